package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tenderdesk/proposal-evaluator/internal/models"
	"tenderdesk/proposal-evaluator/internal/repositories"
	"tenderdesk/proposal-evaluator/internal/services"
)

// ChatHandler answers questions about the current session's proposals.
type ChatHandler struct {
	sessionRepo repositories.SessionRepository
	chatService services.ChatService
}

func NewChatHandler(sessionRepo repositories.SessionRepository, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		sessionRepo: sessionRepo,
		chatService: chatService,
	}
}

// HandleChat handles POST /chat.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question is required",
		})
	}

	session, ok := h.sessionRepo.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active session, upload criteria and proposals first",
		})
	}

	answer, err := h.chatService.Ask(c.Context(), session.ID.String(), question)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to answer question: " + err.Error(),
		})
	}

	return c.JSON(models.ChatResponse{Answer: answer})
}
