// middleware.go - Host-Pruefung fuer lokal gebundene Server
//
// Lauscht der Server auf Loopback, werden nur Host-Header akzeptiert, die
// auf diesen Server zeigen: IP-Literale, localhost und der per
// OLLAMA_NATIVE_HOST konfigurierte Host-Name. Fremde Namen deuten auf
// DNS-Rebinding und werden mit 403 abgewiesen.
package server

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// hostGuard kennt die Host-Namen, unter denen der Server erreichbar ist
type hostGuard struct {
	loopback bool
	names    []string
}

// newHostGuard erstellt die Pruefung fuer die Bind-Adresse. configured ist
// der Host-Name aus OLLAMA_NATIVE_HOST (ohne Port).
func newHostGuard(addr net.Addr, configured string) *hostGuard {
	g := &hostGuard{names: []string{"localhost"}}

	if addr != nil {
		if ap, err := netip.ParseAddrPort(addr.String()); err == nil {
			g.loopback = ap.Addr().IsLoopback()
		}
	}

	if configured = strings.ToLower(strings.Trim(configured, "[]")); configured != "" {
		g.names = append(g.names, configured)
	}
	return g
}

// allows prueft einen Host-Header (mit oder ohne Port)
func (g *hostGuard) allows(hostHeader string) bool {
	if !g.loopback {
		return true
	}

	host, _, err := net.SplitHostPort(hostHeader)
	if err != nil {
		host = hostHeader
	}
	host = strings.ToLower(strings.Trim(host, "[]"))

	// Ohne Host-Header (HTTP/1.0) gibt es nichts umzubinden
	if host == "" {
		return true
	}

	// IP-Literale werden nicht ueber DNS aufgeloest
	if _, err := netip.ParseAddr(host); err == nil {
		return true
	}

	for _, name := range g.names {
		if host == name {
			return true
		}
	}
	return false
}

// handler gibt die gin-Middleware zurueck
func (g *hostGuard) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.allows(c.Request.Host) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "host " + c.Request.Host + " not allowed"})
			return
		}
		c.Next()
	}
}
