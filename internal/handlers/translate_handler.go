package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tenderdesk/proposal-evaluator/internal/models"
	"tenderdesk/proposal-evaluator/internal/repositories"
	"tenderdesk/proposal-evaluator/internal/services"
)

// TranslateHandler produces a full translation of one uploaded proposal.
type TranslateHandler struct {
	sessionRepo repositories.SessionRepository
	normalizer  services.NormalizerService
	translator  services.TranslatorService
}

func NewTranslateHandler(sessionRepo repositories.SessionRepository, normalizer services.NormalizerService, translator services.TranslatorService) *TranslateHandler {
	return &TranslateHandler{
		sessionRepo: sessionRepo,
		normalizer:  normalizer,
		translator:  translator,
	}
}

// HandleTranslate handles POST /translate. Repeated requests for the same
// document content are served from the on-disk cache without a model call.
func (h *TranslateHandler) HandleTranslate(c *fiber.Ctx) error {
	var req models.TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file_name is required",
		})
	}

	session, ok := h.sessionRepo.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active session, upload criteria and proposals first",
		})
	}

	var target *models.UploadedDocument
	for i := range session.Documents {
		if session.Documents[i].FileName == fileName {
			target = &session.Documents[i]
			break
		}
	}
	if target == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("document %s is not part of the current session", fileName),
		})
	}

	normalized, err := h.normalizer.Normalize(target.FilePath)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read %s: %v", fileName, err),
		})
	}

	translated, err := h.translator.TranslateDocument(c.Context(), normalized.PlainText())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to translate %s: %v", fileName, err),
		})
	}

	return c.JSON(models.TranslateResponse{
		FileName:       fileName,
		TranslatedText: translated,
	})
}
