package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Jpmac110205/jarvis/internal/connectors/google"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driving"
	"github.com/Jpmac110205/jarvis/internal/logger"
)

// DefaultPort is the port the server listens on when none is configured.
const DefaultPort = 8080

// Config holds server configuration.
type Config struct {
	// Port to listen on.
	Port int

	// FrontendURL is the web frontend origin, used for CORS and the
	// post-auth redirect.
	FrontendURL string
}

// WithDefaults fills in zero-valued fields.
func (c Config) WithDefaults() Config {
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.FrontendURL == "" {
		c.FrontendURL = "http://localhost:5173"
	}
	return c
}

// Server wires the HTTP controllers into a Fiber app.
type Server struct {
	app *fiber.App
	cfg Config
}

// New creates the server. The Google dependencies are optional; when
// auth is nil the Google routes respond 503.
func New(
	cfg Config,
	chatService driving.ChatService,
	auth *google.Authenticator,
	calendarService driven.CalendarService,
	tasksService driven.TasksService,
) *Server {
	cfg = cfg.WithDefaults()

	app := fiber.New(fiber.Config{
		AppName:               "Jarvis",
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
	}))

	NewChatController(chatService).RegisterRoutes(app)
	NewGoogleController(auth, calendarService, tasksService, cfg.FrontendURL).RegisterRoutes(app)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return &Server{app: app, cfg: cfg}
}

// App returns the underlying Fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens until Shutdown is called or the listener fails.
func (s *Server) Run() error {
	logger.Info("HTTP server listening on :%d", s.cfg.Port)
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Port))
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
