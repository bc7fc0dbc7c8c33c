package models

type SessionResponse struct {
	ID        string             `json:"id"`
	Criteria  []string           `json:"criteria"`
	Documents []UploadedDocument `json:"documents"`
	Warnings  []string           `json:"warnings,omitempty"`
}

type EvaluateResponse struct {
	SessionID string            `json:"session_id"`
	Result    *EvaluationResult `json:"result"`
}

type SectionsResponse struct {
	SessionID string               `json:"session_id"`
	Sections  map[string][]Section `json:"sections"`
	Warnings  []string             `json:"warnings,omitempty"`
}

type ChatRequest struct {
	Question string `json:"question"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type TranslateRequest struct {
	FileName string `json:"file_name"`
}

type TranslateResponse struct {
	FileName       string `json:"file_name"`
	TranslatedText string `json:"translated_text"`
}
