package services

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// DetectorService guesses the language of a text sample. Best-effort: short
// or ambiguous samples mis-detect, so callers treat the result as a
// heuristic gate, never as authoritative.
type DetectorService interface {
	Detect(text string) (string, error)
}

type detectorService struct {
	detector   lingua.LanguageDetector
	sampleSize int
}

func NewDetectorService(sampleSize int) DetectorService {
	if sampleSize <= 0 {
		sampleSize = 1000
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.Arabic,
			lingua.English,
			lingua.French,
			lingua.Spanish,
			lingua.German,
			lingua.Turkish,
		).
		Build()

	return &detectorService{
		detector:   detector,
		sampleSize: sampleSize,
	}
}

// Detect returns the lowercase ISO 639-1 code of the sample's most likely
// language.
func (d *detectorService) Detect(text string) (string, error) {
	sample := strings.TrimSpace(clipRunes(text, d.sampleSize))
	if sample == "" {
		return "", fmt.Errorf("%w: empty sample", ErrTranslationFailure)
	}

	language, ok := d.detector.DetectLanguageOf(sample)
	if !ok {
		return "", fmt.Errorf("%w: language not recognized", ErrTranslationFailure)
	}

	return strings.ToLower(language.IsoCode639_1().String()), nil
}
