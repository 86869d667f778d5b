package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const banner = "✨ Aetherius, the Eternal Sentry, watches over Arcadia!"

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status   string `json:"status"`
	Bot      string `json:"bot"`
	Database string `json:"database,omitempty"`
}

// Server is the liveness endpoint hosting platforms poll.
type Server struct {
	app *fiber.App
	db  Pinger
}

// New builds the server. db may be nil, in which case /health does not
// report on the database.
func New(db Pinger) *Server {
	s := &Server{db: db}
	s.app = fiber.New(fiber.Config{
		AppName:               "Aetherius",
		DisableStartupMessage: true,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
	})

	s.app.Use(recover.New())
	s.app.Use(loggingMiddleware())

	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(banner)
	})
	s.app.Get("/health", s.health)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) health(c *fiber.Ctx) error {
	resp := Response{Status: "online", Bot: "Aetherius"}
	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		resp.Database = "ok"
		if err := s.db.Ping(ctx); err != nil {
			resp.Database = "unreachable"
		}
	}
	return c.JSON(resp)
}

// Listen serves on port until Shutdown is called.
func (s *Server) Listen(port int) error {
	slog.Info("Health server listening",
		slog.String("type", "sys"),
		slog.Int("port", port))
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// loggingMiddleware logs requests at debug level; pollers hit these routes
// every few seconds.
func loggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		level := slog.LevelDebug
		if status >= 500 {
			level = slog.LevelError
		}
		slog.Log(c.UserContext(), level, "HTTP request",
			slog.String("type", "sys"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("took", time.Since(start)))
		return err
	}
}
