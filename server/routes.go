// Package server - HTTP-Router fuer die Native-Factory
// Beinhaltet: Server-Struct, Router-Registrierung, Select- und Templates-Handler
package server

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ollama/native/api"
	"github.com/ollama/native/envconfig"
	"github.com/ollama/native/native"
	"github.com/ollama/native/native/factory"
)

var mode string = gin.DebugMode

func init() {
	switch mode {
	case gin.DebugMode:
	case gin.ReleaseMode:
	case gin.TestMode:
	default:
		mode = gin.DebugMode
	}

	gin.SetMode(mode)
}

// Server bedient die Native-API
type Server struct {
	addr    net.Addr
	factory *factory.Factory
	logger  *slog.Logger
}

// NewServer erstellt einen Server fuer die Factory
func NewServer(addr net.Addr, f *factory.Factory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{addr: addr, factory: f, logger: logger}
}

// GenerateRoutes erstellt und konfiguriert den HTTP-Router
func (s *Server) GenerateRoutes() http.Handler {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWildcard = true
	corsConfig.AllowBrowserExtensions = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"User-Agent",
		"Accept",
		"X-Requested-With",
	}
	corsConfig.AllowOrigins = envconfig.AllowedOrigins()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		gin.Recovery(),
		cors.New(corsConfig),
		newHostGuard(s.addr, envconfig.Host().Hostname()).handler(),
	)

	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "Native factory is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "Native factory is running") })

	r.POST("/api/native/select", s.SelectHandler)
	r.GET("/api/native/templates", s.TemplatesHandler)

	return r
}

// SelectHandler waehlt und konstruiert die Architektur fuer eine Anfrage
func (s *Server) SelectHandler(c *gin.Context) {
	var req api.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Template == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "template is required"})
		return
	}

	modality, err := native.ParseModality(req.Modality)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := native.DecodeInput(modality, req.Input)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := s.factory.FromTemplate(req.Template, req.Params, in, s.logger)
	if err != nil {
		s.logger.Debug("native select failed", "template", req.Template, "modality", modality, "error", err)
		c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if m == nil {
		serr := api.StatusError{
			StatusCode:   http.StatusNotFound,
			ErrorMessage: "no native architecture for template " + req.Template + " (" + modality.String() + ")",
		}
		if suggestion, ok := factory.Suggest(req.Template, s.factory.Templates(modality)); ok {
			serr.Suggestion = suggestion
		}
		c.AbortWithStatusJSON(serr.StatusCode, serr)
		return
	}

	s.logger.Info("native architecture selected", "template", req.Template, "modality", modality, "architecture", m.Architecture(), "id", m.ID())

	c.JSON(http.StatusOK, api.SelectResponse{
		Template:     req.Template,
		Modality:     modality.String(),
		Architecture: m.Architecture(),
		ID:           m.ID().String(),
		Parameters:   m.Describe(),
	})
}

// TemplatesHandler listet die Templates, optional gefiltert per ?modality=
func (s *Server) TemplatesHandler(c *gin.Context) {
	modalities := []native.Modality{native.ModalityTimeSeries, native.ModalityImage, native.ModalityVideo, native.ModalityText}
	if q := c.Query("modality"); q != "" {
		m, err := native.ParseModality(q)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		modalities = slices.DeleteFunc(modalities, func(x native.Modality) bool { return x != m })
	}

	resp := api.TemplatesResponse{Templates: make(map[string][]string, len(modalities))}
	for _, m := range modalities {
		templates := s.factory.Templates(m)
		if templates == nil {
			templates = []string{}
		}
		resp.Templates[m.String()] = templates
	}

	c.JSON(http.StatusOK, resp)
}

// statusFor ordnet Fehler einem HTTP-Status zu. Decodierfehler sind immer
// Fehler der Anfrage, Konstruktionsfehler stammen ebenfalls aus den Parametern.
func statusFor(err error) int {
	if errors.Is(err, native.ErrDecode) {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
