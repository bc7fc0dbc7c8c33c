package models

// Section is one labeled segment of a proposal, in the model's emitted
// order. Content is a verbatim extract, never paraphrased or truncated.
type Section struct {
	Section   string `json:"section"`
	Summary   string `json:"summary"`
	StartPage int    `json:"start_page"`
	Content   string `json:"content"`
}
