// config.go - Haupt-Konfigurationsfunktionen
//
// Dieses Modul enthaelt:
// - Host: Gibt die Bind-Adresse des HTTP-Servers zurueck (OLLAMA_NATIVE_HOST)
// - AllowedOrigins: Gibt erlaubte CORS-Origins zurueck (OLLAMA_ORIGINS)
// - LogLevel: Gibt Log-Level zurueck (OLLAMA_DEBUG)
// - VisionCatalog: Schaltet die Vision-Registry ein/aus (OLLAMA_NATIVE_VISION)
//
// Getter und Export sind in config_utils.go ausgelagert.
package envconfig

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// defaultPort ist der Port des Native-Servers
const defaultPort = "11435"

// Host gibt die Bind-Adresse des Servers zurueck
// Konfigurierbar via OLLAMA_NATIVE_HOST als host, host:port oder :port.
// Ein Scheme-Praefix und ein Pfad werden ignoriert, der Server spricht nur HTTP.
// Default: 127.0.0.1:11435
func Host() *url.URL {
	s := Var("OLLAMA_NATIVE_HOST")
	if _, rest, ok := strings.Cut(s, "://"); ok {
		s = rest
	}
	s, _, _ = strings.Cut(s, "/")

	host, port := "127.0.0.1", defaultPort
	if h, p, err := net.SplitHostPort(s); err == nil {
		host, port = h, p
	} else if s != "" {
		host = strings.Trim(s, "[]")
	}

	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{Scheme: "http", Host: net.JoinHostPort(host, port)}
}

// AllowedOrigins gibt erlaubte Origins zurueck
// Konfigurierbar via OLLAMA_ORIGINS (komma-separiert)
// Enthaelt Standard-Origins fuer localhost
func AllowedOrigins() (origins []string) {
	if s := Var("OLLAMA_ORIGINS"); s != "" {
		origins = strings.Split(s, ",")
	}

	for _, origin := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		origins = append(origins,
			fmt.Sprintf("http://%s", origin),
			fmt.Sprintf("https://%s", origin),
			fmt.Sprintf("http://%s", net.JoinHostPort(origin, "*")),
			fmt.Sprintf("https://%s", net.JoinHostPort(origin, "*")),
		)
	}

	return origins
}

// LogLevel gibt das Log-Level zurueck
// OLLAMA_DEBUG=1 -> Debug, OLLAMA_DEBUG=2 -> Trace
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("OLLAMA_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// VisionCatalog gibt an ob der Bild-Selector die Vision-Registry befragt
// Konfigurierbar via OLLAMA_NATIVE_VISION (Default: true)
var VisionCatalog = BoolWithDefault("OLLAMA_NATIVE_VISION")

// Var liest eine Environment-Variable ohne umgebende Leerzeichen und Quotes
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
