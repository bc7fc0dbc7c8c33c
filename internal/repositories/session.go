package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tenderdesk/proposal-evaluator/internal/models"
)

// SessionRepository holds the single active evaluation session. A new
// upload replaces the whole session; results are swapped wholesale, never
// merged, so a fresh run can never see stale state.
type SessionRepository interface {
	Replace(criteria []string, documents []models.UploadedDocument) *models.Session
	Current() (*models.Session, bool)
	Clear()
	SetEvaluation(result *models.EvaluationResult) bool
	SetSections(fileName string, sections []models.Section) bool
	ReplaceSections(sections map[string][]models.Section) bool
}

type sessionRepository struct {
	mu      sync.RWMutex
	session *models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

// Replace implements SessionRepository.
func (r *sessionRepository) Replace(criteria []string, documents []models.UploadedDocument) *models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session = &models.Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Criteria:  criteria,
		Documents: documents,
		Sections:  make(map[string][]models.Section),
	}
	return r.session
}

// Current implements SessionRepository.
func (r *sessionRepository) Current() (*models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.session == nil {
		return nil, false
	}
	return r.session, true
}

// Clear implements SessionRepository.
func (r *sessionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
}

// SetEvaluation implements SessionRepository. It reports false when no
// session is active.
func (r *sessionRepository) SetEvaluation(result *models.EvaluationResult) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return false
	}
	r.session.Evaluation = result
	return true
}

// SetSections implements SessionRepository. Entries accumulate per
// document within one session.
func (r *sessionRepository) SetSections(fileName string, sections []models.Section) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return false
	}
	r.session.Sections[fileName] = sections
	return true
}

// ReplaceSections implements SessionRepository, swapping the whole mapping
// in one run.
func (r *sessionRepository) ReplaceSections(sections map[string][]models.Section) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return false
	}
	r.session.Sections = sections
	return true
}
