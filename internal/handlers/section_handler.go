package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"tenderdesk/proposal-evaluator/internal/models"
	"tenderdesk/proposal-evaluator/internal/repositories"
	"tenderdesk/proposal-evaluator/internal/services"
)

// SectionHandler segments the session's proposals and serves the results,
// including plain-text downloads of individual sections.
type SectionHandler struct {
	sessionRepo repositories.SessionRepository
	normalizer  services.NormalizerService
	analyzer    services.AnalyzerService
}

func NewSectionHandler(sessionRepo repositories.SessionRepository, normalizer services.NormalizerService, analyzer services.AnalyzerService) *SectionHandler {
	return &SectionHandler{
		sessionRepo: sessionRepo,
		normalizer:  normalizer,
		analyzer:    analyzer,
	}
}

// HandleAnalyze handles POST /sections. All proposals are segmented in one
// run; the run's output replaces any previous segmentation wholesale.
func (h *SectionHandler) HandleAnalyze(c *fiber.Ctx) error {
	session, ok := h.sessionRepo.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active session, upload criteria and proposals first",
		})
	}

	var warnings []string
	sections := make(map[string][]models.Section)

	for _, doc := range session.Documents {
		normalized, err := h.normalizer.Normalize(doc.FilePath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", doc.FileName, err))
			continue
		}

		docSections, err := h.analyzer.Analyze(c.Context(), normalized)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", doc.FileName, err))
			continue
		}
		sections[doc.FileName] = docSections
	}

	h.sessionRepo.ReplaceSections(sections)

	return c.JSON(models.SectionsResponse{
		SessionID: session.ID.String(),
		Sections:  sections,
		Warnings:  warnings,
	})
}

// HandleGetSections handles GET /sections, returning the last segmentation
// run for the whole session.
func (h *SectionHandler) HandleGetSections(c *fiber.Ctx) error {
	session, ok := h.sessionRepo.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active session, upload criteria and proposals first",
		})
	}

	if len(session.Sections) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no section analysis has been run for this session yet",
		})
	}

	return c.JSON(models.SectionsResponse{
		SessionID: session.ID.String(),
		Sections:  session.Sections,
	})
}

// HandleDownloadSection handles GET /sections/download. It streams one
// section's content as a plain-text attachment named
// {document}_{section}.txt.
func (h *SectionHandler) HandleDownloadSection(c *fiber.Ctx) error {
	fileName := c.Query("file")
	if fileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query parameter 'file' is required",
		})
	}
	sectionName := c.Query("section")
	if sectionName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query parameter 'section' is required",
		})
	}

	session, ok := h.sessionRepo.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active session, upload criteria and proposals first",
		})
	}

	docSections, ok := session.Sections[fileName]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("no sections found for document %s", fileName),
		})
	}

	for _, section := range docSections {
		if section.Section == sectionName {
			attachment := fmt.Sprintf("%s_%s.txt", fileName, sectionName)
			c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", attachment))
			return c.SendString(section.Content)
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": fmt.Sprintf("section %q not found in %s", sectionName, fileName),
	})
}
