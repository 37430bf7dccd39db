package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Jpmac110205/jarvis/internal/connectors/google"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
	"github.com/Jpmac110205/jarvis/internal/logger"
)

// googleTimeout bounds one pass-through call to a Google API.
const googleTimeout = 30 * time.Second

// GoogleController handles the OAuth flow and the calendar and tasks
// pass-through endpoints.
type GoogleController struct {
	auth            *google.Authenticator
	calendarService driven.CalendarService
	tasksService    driven.TasksService
	frontendURL     string
}

// NewGoogleController creates the controller. A nil authenticator
// disables the Google surface; routes then respond 503.
func NewGoogleController(
	auth *google.Authenticator,
	calendarService driven.CalendarService,
	tasksService driven.TasksService,
	frontendURL string,
) *GoogleController {
	return &GoogleController{
		auth:            auth,
		calendarService: calendarService,
		tasksService:    tasksService,
		frontendURL:     frontendURL,
	}
}

// RegisterRoutes mounts the Google routes on the app.
func (c *GoogleController) RegisterRoutes(r fiber.Router) {
	r.Get("/auth/google", c.Login)
	r.Get("/auth/google/callback", c.Callback)
	r.Get("/events", c.Events)
	r.Get("/tasks", c.Tasks)
}

// Login redirects the browser to the Google consent page.
func (c *GoogleController) Login(ctx *fiber.Ctx) error {
	if c.auth == nil {
		return c.unconfigured(ctx)
	}
	return ctx.Redirect(c.auth.AuthURL(uuid.NewString()), fiber.StatusTemporaryRedirect)
}

// Callback exchanges the authorization code and sends the browser back
// to the frontend.
func (c *GoogleController) Callback(ctx *fiber.Ctx) error {
	if c.auth == nil {
		return c.unconfigured(ctx)
	}

	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No code provided"})
	}

	if err := c.auth.Exchange(ctx.Context(), code); err != nil {
		logger.Warn("OAuth exchange failed: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	logger.Info("Google account connected")
	return ctx.Redirect(c.frontendURL, fiber.StatusTemporaryRedirect)
}

// Events relays upcoming calendar events.
func (c *GoogleController) Events(ctx *fiber.Ctx) error {
	if c.auth == nil || c.calendarService == nil {
		return c.unconfigured(ctx)
	}
	if !c.auth.Authenticated() {
		return c.unauthenticated(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx.Context(), googleTimeout)
	defer cancel()

	events, err := c.calendarService.UpcomingEvents(callCtx, time.Now(), 10)
	if err != nil {
		return c.relayError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"events": events})
}

// Tasks relays the user's open tasks.
func (c *GoogleController) Tasks(ctx *fiber.Ctx) error {
	if c.auth == nil || c.tasksService == nil {
		return c.unconfigured(ctx)
	}
	if !c.auth.Authenticated() {
		return c.unauthenticated(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx.Context(), googleTimeout)
	defer cancel()

	tasks, err := c.tasksService.ListTasks(callCtx, 10)
	if err != nil {
		return c.relayError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"tasks": tasks})
}

func (c *GoogleController) unconfigured(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusServiceUnavailable).
		JSON(fiber.Map{"error": "Google integration not configured"})
}

func (c *GoogleController) unauthenticated(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"error": "User not authenticated"})
}

// relayError maps Google failures to HTTP statuses: expired or missing
// credentials surface as 401, everything else as a 502 relay failure.
func (c *GoogleController) relayError(ctx *fiber.Ctx, err error) error {
	logger.Warn("Google relay failed: %v", err)
	if google.IsUnauthorized(err) {
		return c.unauthenticated(ctx)
	}
	return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
}
