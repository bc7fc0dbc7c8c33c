package models

import (
	"time"

	"github.com/google/uuid"
)

// Session holds one evaluation batch: the criteria, the uploaded proposals
// and the latest computed results. A new upload replaces it wholesale.
type Session struct {
	ID         uuid.UUID            `json:"id"`
	CreatedAt  time.Time            `json:"created_at"`
	Criteria   []string             `json:"criteria"`
	Documents  []UploadedDocument   `json:"documents"`
	Evaluation *EvaluationResult    `json:"evaluation,omitempty"`
	Sections   map[string][]Section `json:"sections,omitempty"`
}
