package services

import "errors"

var (
	// ErrUnsupportedFormat marks an upload that is neither PDF nor DOCX.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyOrShortText marks a document whose extracted text is below
	// the minimum viable length.
	ErrEmptyOrShortText = errors.New("extracted text is empty or too short")

	// ErrModelUnavailable means no credential is configured for the model
	// collaborator. Fatal for every model-dependent action.
	ErrModelUnavailable = errors.New("model unavailable: no API key configured")

	// ErrTranslationFailure marks a failed detection or translation step;
	// callers continue with the untranslated input.
	ErrTranslationFailure = errors.New("translation failed")
)
