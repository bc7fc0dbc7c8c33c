package models

// CriterionScore is one scored rubric dimension for one proposal. Score is
// clamped to [1,4]; 0 marks a value the model emitted as non-numeric.
type CriterionScore struct {
	Criterion  string `json:"criterion"`
	Score      int    `json:"score"`
	AIQuestion string `json:"ai_question"`
	Reason     string `json:"reason"`
}

// DocumentEvaluation is the aggregate result for one proposal.
// Overall = mean(score)/4, in [0,1].
type DocumentEvaluation struct {
	FileName string           `json:"file_name"`
	Overall  float64          `json:"overall"`
	Comment  string           `json:"comment"`
	Scores   []CriterionScore `json:"scores"`
}

// EvaluationResult is the outcome of one evaluation run across a batch.
// Ranked is sorted by Overall descending, ties keeping upload order.
// Documents that failed to produce scores are absent from Ranked and named
// in Warnings instead.
type EvaluationResult struct {
	Ranked   []DocumentEvaluation        `json:"ranked"`
	Details  map[string][]CriterionScore `json:"details"`
	Warnings []string                    `json:"warnings,omitempty"`
}
