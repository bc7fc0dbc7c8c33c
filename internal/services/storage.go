package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService persists uploaded files under the configured upload
// directory with collision-free names.
type StorageService interface {
	SaveProposal(file *multipart.FileHeader) (string, string, error)
	SaveCriteriaFile(file *multipart.FileHeader) (string, string, error)
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// SaveProposal accepts PDF and DOCX proposals only; anything else is an
// UnsupportedFormat error surfaced per document.
func (s *storageService) SaveProposal(file *multipart.FileHeader) (string, string, error) {
	return s.save(file, "proposal", ".pdf", ".docx")
}

// SaveCriteriaFile accepts the Excel criteria workbook.
func (s *storageService) SaveCriteriaFile(file *multipart.FileHeader) (string, string, error) {
	return s.save(file, "criteria", ".xlsx", ".xls")
}

func (s *storageService) save(file *multipart.FileHeader, kind string, allowedExts ...string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))

	allowed := false
	for _, a := range allowedExts {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, file.Filename)
	}

	uniqueFilename := fmt.Sprintf("%s_%s%s", kind, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) DeleteFile(filename string) error {
	if err := os.Remove(filepath.Join(s.uploadPath, filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
