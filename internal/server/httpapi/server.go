package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userhub/internal/logging"
	"github.com/dmitrijs2005/userhub/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 5 * time.Second

// Server wires handlers, middleware and routes into an echo instance.
type Server struct {
	address string
	logger  logging.Logger
	echo    *echo.Echo
}

func NewServer(address string, logger logging.Logger, accounts AccountAPI, gate *auth.Gate) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	h := NewAccountHandler(accounts)

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// signup is open; everything else requires a verified bearer token
	e.POST("/api/users", h.Create)

	g := e.Group("/api", BearerAuth(gate))
	g.GET("/users", h.List)
	g.GET("/users/:id", h.View)
	g.PATCH("/users/:id", h.Update)

	return &Server{
		address: address,
		logger:  logger.With("module", "httpapi"),
		echo:    e,
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error during shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
