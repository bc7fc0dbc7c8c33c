package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"tenderdesk/proposal-evaluator/internal/models"
	"tenderdesk/proposal-evaluator/internal/repositories"
	"tenderdesk/proposal-evaluator/internal/services"
)

// UploadHandler starts a new evaluation session from one criteria workbook
// and a batch of proposal files.
type UploadHandler struct {
	sessionRepo     repositories.SessionRepository
	storageService  services.StorageService
	criteriaService services.CriteriaService
	normalizer      services.NormalizerService
	ingestService   services.IngestService
	maxFileSize     int64
}

func NewUploadHandler(
	sessionRepo repositories.SessionRepository,
	storageService services.StorageService,
	criteriaService services.CriteriaService,
	normalizer services.NormalizerService,
	ingestService services.IngestService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		sessionRepo:     sessionRepo,
		storageService:  storageService,
		criteriaService: criteriaService,
		normalizer:      normalizer,
		ingestService:   ingestService,
		maxFileSize:     maxFileSize,
	}
}

// HandleStartSession handles POST /session. It expects a multipart form
// with a "criteria" workbook and one or more "proposals" files. The new
// session replaces the previous one entirely.
func (h *UploadHandler) HandleStartSession(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	criteriaFiles := form.File["criteria"]
	if len(criteriaFiles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "criteria workbook is required",
		})
	}

	proposalFiles := form.File["proposals"]
	if len(proposalFiles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one proposal file (PDF/DOCX) is required",
		})
	}

	// Criteria first; a bad workbook fails the whole upload.
	criteriaFile := criteriaFiles[0]
	if criteriaFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("criteria file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	_, criteriaPath, err := h.storageService.SaveCriteriaFile(criteriaFile)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save criteria file: %v", err),
		})
	}

	criteria, err := h.criteriaService.ParseCriteriaFile(criteriaPath)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to parse criteria: %v", err),
		})
	}

	var warnings []string
	var documents []models.UploadedDocument

	for _, file := range proposalFiles {
		if file.Size > h.maxFileSize {
			warnings = append(warnings, fmt.Sprintf("%s: file too large, skipped", file.Filename))
			continue
		}

		storedName, filePath, err := h.storageService.SaveProposal(file)
		if err != nil {
			if errors.Is(err, services.ErrUnsupportedFormat) {
				warnings = append(warnings, fmt.Sprintf("%s: unsupported format, only PDF and DOCX are accepted", file.Filename))
			} else {
				warnings = append(warnings, fmt.Sprintf("%s: failed to store: %v", file.Filename, err))
			}
			continue
		}

		documents = append(documents, models.UploadedDocument{
			FileName:   file.Filename,
			StoredName: storedName,
			FilePath:   filePath,
		})
	}

	if len(documents) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "no usable proposal files in upload",
			"warnings": warnings,
		})
	}

	// Drop the previous session's retrieval chunks and stored files before
	// replacing it.
	if prev, ok := h.sessionRepo.Current(); ok {
		if err := h.ingestService.ClearSession(c.Context(), prev.ID.String()); err != nil {
			log.Printf("⚠️  Failed to clear previous session chunks: %v\n", err)
		}
		for _, doc := range prev.Documents {
			if err := h.storageService.DeleteFile(doc.StoredName); err != nil {
				log.Printf("⚠️  Failed to delete stored file %s: %v\n", doc.StoredName, err)
			}
		}
	}

	session := h.sessionRepo.Replace(criteria, documents)
	warnings = append(warnings, h.ingestForChat(c, session)...)

	return c.Status(fiber.StatusCreated).JSON(models.SessionResponse{
		ID:        session.ID.String(),
		Criteria:  session.Criteria,
		Documents: session.Documents,
		Warnings:  warnings,
	})
}

// ingestForChat feeds each proposal's text into the vector store.
// Best-effort: chat quality degrades on failure, the session still works.
func (h *UploadHandler) ingestForChat(c *fiber.Ctx, session *models.Session) []string {
	var warnings []string
	for _, doc := range session.Documents {
		normalized, err := h.normalizer.Normalize(doc.FilePath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: not indexed for chat: %v", doc.FileName, err))
			continue
		}
		if err := h.ingestService.IngestDocument(c.Context(), session.ID.String(), doc.FileName, normalized.PlainText()); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: not indexed for chat: %v", doc.FileName, err))
		}
	}
	return warnings
}
