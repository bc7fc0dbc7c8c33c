package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tenderdesk/proposal-evaluator/internal/models"
	"tenderdesk/proposal-evaluator/internal/repositories"
	"tenderdesk/proposal-evaluator/internal/services"
)

// EvaluateHandler runs the scoring pipeline over the current session and
// serves the stored results.
type EvaluateHandler struct {
	sessionRepo repositories.SessionRepository
	evaluator   services.EvaluatorService
}

func NewEvaluateHandler(sessionRepo repositories.SessionRepository, evaluator services.EvaluatorService) *EvaluateHandler {
	return &EvaluateHandler{
		sessionRepo: sessionRepo,
		evaluator:   evaluator,
	}
}

// HandleEvaluate handles POST /evaluate. Documents are scored one at a
// time; a re-run replaces the previous results wholesale.
func (h *EvaluateHandler) HandleEvaluate(c *fiber.Ctx) error {
	session, ok := h.sessionRepo.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active session, upload criteria and proposals first",
		})
	}

	result := h.evaluator.Evaluate(c.Context(), session.Documents, session.Criteria)
	h.sessionRepo.SetEvaluation(result)

	return c.JSON(models.EvaluateResponse{
		SessionID: session.ID.String(),
		Result:    result,
	})
}

// HandleResults handles GET /results, returning the last evaluation run.
func (h *EvaluateHandler) HandleResults(c *fiber.Ctx) error {
	session, ok := h.sessionRepo.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active session, upload criteria and proposals first",
		})
	}

	if session.Evaluation == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no evaluation has been run for this session yet",
		})
	}

	return c.JSON(models.EvaluateResponse{
		SessionID: session.ID.String(),
		Result:    session.Evaluation,
	})
}
