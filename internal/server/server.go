package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/payportal/payportal/internal/config"
	"github.com/payportal/payportal/internal/routes"
)

// Server wraps the Fiber application plus the plain-HTTP listener that only
// redirects to HTTPS.
type Server struct {
	app      *fiber.App
	redirect *fiber.App
	cfg      config.Config
}

// New instantiates the HTTP server and delegates route wiring to routes.Setup.
func New(cfg config.Config, db *mongo.Database, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: errorHandler,
	})

	if err := routes.Setup(app, routes.Deps{Cfg: cfg, DB: db, Logger: logger}); err != nil {
		return nil, err
	}

	return &Server{app: app, redirect: newRedirectApp(cfg), cfg: cfg}, nil
}

// Listen starts the API listener, with TLS when certificate material is
// configured.
func (s *Server) Listen() error {
	if s.cfg.TLSEnabled() {
		return s.app.ListenTLS(s.cfg.HTTPSAddress(), s.cfg.CertFile, s.cfg.KeyFile)
	}
	return s.app.Listen(s.cfg.HTTPSAddress())
}

// ListenRedirect starts the plain-HTTP redirect listener. It is a no-op
// unless TLS is enabled, since without TLS there is nothing to redirect to.
func (s *Server) ListenRedirect() error {
	if !s.cfg.TLSEnabled() {
		return nil
	}
	return s.redirect.Listen(s.cfg.HTTPAddress())
}

// Shutdown gracefully stops both listeners.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)
	if rerr := s.redirect.ShutdownWithContext(ctx); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// App exposes the underlying Fiber application for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func newRedirectApp(cfg config.Config) *fiber.App {
	redirect := fiber.New(fiber.Config{
		AppName:               cfg.AppName + " (redirect)",
		DisableStartupMessage: true,
	})
	redirect.All("/*", func(c *fiber.Ctx) error {
		target := "https://" + c.Hostname() + c.OriginalURL()
		return c.Redirect(target, http.StatusMovedPermanently)
	})
	return redirect
}

// errorHandler renders every error as the JSON error body the clients expect.
func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	message := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
