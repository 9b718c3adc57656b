// serve.go - Server-Start mit Signal-Behandlung
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ollama/native/envconfig"
	"github.com/ollama/native/logutil"
	"github.com/ollama/native/native/factory"
	"github.com/ollama/native/vision"
)

// NewFactory erstellt die Factory gemaess OLLAMA_NATIVE_VISION
func NewFactory() *factory.Factory {
	if !envconfig.VisionCatalog(true) {
		return factory.New(factory.WithVisionCatalog(nil))
	}
	return factory.New(factory.WithVisionCatalog(vision.DefaultRegistry))
}

// Serve startet den HTTP-Server auf ln und blockiert bis SIGINT/SIGTERM
func Serve(ln net.Listener) error {
	logger := logutil.NewLogger(os.Stderr, envconfig.LogLevel())
	slog.SetDefault(logger)
	slog.Info("server config", "env", envconfig.Values())

	s := NewServer(ln.Addr(), NewFactory(), logger)
	srvr := &http.Server{
		Handler:           s.GenerateRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srvr.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown", "error", err)
		}
	}()

	slog.Info(fmt.Sprintf("Listening on %s", ln.Addr()))
	if err := srvr.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
