package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Jpmac110205/jarvis/internal/core/ports/driving"
	"github.com/Jpmac110205/jarvis/internal/logger"
)

// chatTimeout bounds one conversational exchange end to end.
const chatTimeout = 60 * time.Second

// errorReply is returned to the frontend when an exchange fails. The
// failure detail rides alongside in the error field.
const errorReply = "An error occurred while processing your message. Please try again."

// ChatController handles the conversational endpoints.
type ChatController struct {
	chatService driving.ChatService
}

// NewChatController creates a chat controller.
func NewChatController(chatService driving.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// RegisterRoutes mounts the chat routes on the app.
func (c *ChatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Post("/export/conversation", c.ExportConversation)
}

// chatRequest is the POST /chat body.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the POST /chat reply. Error is null on success.
type chatResponse struct {
	Reply string  `json:"reply"`
	Error *string `json:"error"`
}

// Chat runs one conversational exchange. Failures still return 200
// with an error field so the frontend can render them inline.
func (c *ChatController) Chat(ctx *fiber.Ctx) error {
	var req chatRequest
	if err := ctx.BodyParser(&req); err != nil {
		detail := err.Error()
		return ctx.JSON(chatResponse{Reply: errorReply, Error: &detail})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		// No LLM call and no history mutation for empty input
		return ctx.JSON(chatResponse{Reply: "Please enter a message."})
	}

	sendCtx, cancel := context.WithTimeout(ctx.Context(), chatTimeout)
	defer cancel()

	reply, err := c.chatService.Send(sendCtx, message)
	if err != nil {
		logger.Warn("Chat request failed: %v", err)
		detail := err.Error()
		return ctx.JSON(chatResponse{Reply: errorReply, Error: &detail})
	}

	return ctx.JSON(chatResponse{Reply: reply})
}

// reportMetadata identifies the export format.
type reportMetadata struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Disclaimer string `json:"disclaimer"`
}

// exportTurn is one history entry in the export.
type exportTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExportConversation returns the full conversation history as JSON.
func (c *ChatController) ExportConversation(ctx *fiber.Ctx) error {
	history := c.chatService.History()

	turns := make([]exportTurn, len(history))
	for i, turn := range history {
		turns[i] = exportTurn{Role: turn.Role, Content: turn.Content}
	}

	return ctx.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"report_metadata": reportMetadata{
				Tool:       "Jarvis",
				Version:    "1.0",
				Disclaimer: "Personal use only, not ready for production",
			},
			"conversation_history": turns,
		},
	})
}
