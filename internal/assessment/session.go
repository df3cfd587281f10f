package assessment

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillscan/backend/internal/models"
	"github.com/skillscan/backend/internal/reasoning"
)

// Usage errors: the caller violated a precondition. These surface
// synchronously and are never retried internally.
var (
	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrSessionComplete  = errors.New("assessment session already complete")
	ErrQuestionNotAsked = errors.New("question was not issued in this session")
)

// Session is one adaptive assessment run. All mutation goes through the
// Manager, which serializes it under the session's own lock; sessions for
// different ids never contend with each other.
type Session struct {
	mu sync.Mutex

	ID          string
	UserID      int64
	Subject     string
	SessionType models.SessionType
	StartedAt   time.Time
	CompletedAt *time.Time

	Ability          float64
	AskedQuestionIDs []string
	Responses        []models.ResponseRecord
	Assistance       []models.AssistanceEvent
	Status           models.SessionStatus

	// asked mirrors AskedQuestionIDs for O(1) exclusion checks.
	asked map[string]bool
	// difficulties caches the value computed at selection time, keyed by
	// question id, so the answer-time update sees the same number.
	difficulties map[string]float64
	// finalized records that the session's results have been folded into
	// persistent per-subject state, so repeated completion observations
	// do not double-count.
	finalized bool
}

// Snapshot is a lock-free copy of a session's state, safe to hand to the
// store or the analytics reporter while the live session keeps mutating.
type Snapshot struct {
	ID          string
	UserID      int64
	Subject     string
	SessionType models.SessionType
	StartedAt   time.Time
	CompletedAt *time.Time

	Ability          float64
	AskedQuestionIDs []string
	Responses        []models.ResponseRecord
	Assistance       []models.AssistanceEvent
	Status           models.SessionStatus
}

// AnswerOutcome is what SubmitAnswer hands back to the caller.
type AnswerOutcome struct {
	NewAbility       float64
	AbilityDelta     float64
	ReasoningQuality *float64
	Record           models.ResponseRecord
}

// Manager owns the in-memory session registry. The registry map is guarded
// by its own RWMutex; each session serializes its own mutations.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	scorer       reasoning.Scorer
	maxQuestions int
}

// NewManager builds a session manager. maxQuestions caps how many questions
// a single session may issue; zero means no cap (the pool running dry is
// then the only completion trigger the engine enforces itself).
func NewManager(scorer reasoning.Scorer, maxQuestions int) *Manager {
	if scorer == nil {
		scorer = reasoning.NewHeuristic()
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		scorer:       scorer,
		maxQuestions: maxQuestions,
	}
}

// StartSession creates a session seeded with the given ability estimate and
// registers it. Seeding always succeeds, so the session starts in progress.
func (m *Manager) StartSession(userID int64, subject string, sessionType models.SessionType, initialAbility float64) *Session {
	s := &Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		Subject:      subject,
		SessionType:  sessionType,
		StartedAt:    time.Now().UTC(),
		Ability:      clamp01(initialAbility),
		Status:       models.SessionInProgress,
		asked:        make(map[string]bool),
		difficulties: make(map[string]float64),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Resume registers a session rebuilt from persisted state, e.g. after a
// process restart. A half-finished session (question issued, no answer yet)
// is a valid resumable state.
func (m *Manager) Resume(s *Session) {
	s.asked = make(map[string]bool, len(s.AskedQuestionIDs))
	for _, id := range s.AskedQuestionIDs {
		s.asked[id] = true
	}
	if s.difficulties == nil {
		s.difficulties = make(map[string]float64, len(s.Responses))
	}
	for _, r := range s.Responses {
		s.difficulties[r.QuestionID] = r.QuestionDifficulty
	}
	// A session persisted as complete had its results folded before the
	// restart; resuming it must not fold them again.
	if s.Status == models.SessionComplete {
		s.finalized = true
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
}

func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// NextQuestion selects the information-maximizing candidate, records it as
// asked, and caches its difficulty. A nil question with complete=true means
// the session just reached its natural end (pool exhausted or question cap
// hit) — that is an expected outcome, not an error.
func (m *Manager) NextQuestion(sessionID string, pool []models.QuestionDescriptor) (question *models.QuestionDescriptor, difficulty float64, complete bool, err error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return nil, 0, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status == models.SessionComplete {
		return nil, 0, true, nil
	}

	if m.maxQuestions > 0 && len(s.AskedQuestionIDs) >= m.maxQuestions {
		s.complete()
		return nil, 0, true, nil
	}

	next := SelectNext(s.Ability, s.asked, pool)
	if next == nil {
		s.complete()
		return nil, 0, true, nil
	}

	d := Difficulty(*next)
	s.AskedQuestionIDs = append(s.AskedQuestionIDs, next.ID)
	s.asked[next.ID] = true
	s.difficulties[next.ID] = d

	return next, d, false, nil
}

// SubmitAnswer applies a response to the session: scores think-aloud text if
// present, updates the ability estimate, and appends an immutable response
// record. The question must have been issued by NextQuestion for this
// session.
func (m *Manager) SubmitAnswer(sessionID, questionID string, isCorrect bool, responseTimeSeconds float64, reasoningText string) (*AnswerOutcome, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.asked[questionID] {
		return nil, ErrQuestionNotAsked
	}
	// A question issued before the session completed may still be answered
	// late (e.g. the pool ran dry while an answer was in flight); only
	// re-answering is refused once the session is terminal.
	if s.Status == models.SessionComplete {
		for _, r := range s.Responses {
			if r.QuestionID == questionID {
				return nil, ErrSessionComplete
			}
		}
	}

	difficulty, ok := s.difficulties[questionID]
	if !ok {
		difficulty = 0.5
	}

	var quality *float64
	if reasoningText != "" {
		q := m.scorer.Score(reasoningText)
		quality = &q
	}

	before := s.Ability
	s.Ability = UpdateAbility(before, difficulty, isCorrect, responseTimeSeconds, quality)

	record := models.ResponseRecord{
		QuestionID:          questionID,
		IsCorrect:           isCorrect,
		ResponseTimeSeconds: responseTimeSeconds,
		QuestionDifficulty:  difficulty,
		ReasoningQuality:    quality,
		AnsweredAt:          time.Now().UTC(),
	}
	s.Responses = append(s.Responses, record)

	return &AnswerOutcome{
		NewAbility:       s.Ability,
		AbilityDelta:     s.Ability - before,
		ReasoningQuality: quality,
		Record:           record,
	}, nil
}

// RecordAssistance logs an external-help event. Purely informational: it
// feeds the analytics assistance percentage and never moves the ability
// estimate.
func (m *Manager) RecordAssistance(sessionID, questionID, assistanceType, content string) error {
	s, err := m.Get(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Assistance = append(s.Assistance, models.AssistanceEvent{
		QuestionID:     questionID,
		AssistanceType: assistanceType,
		Content:        content,
		RecordedAt:     time.Now().UTC(),
	})
	return nil
}

// Complete terminates a session explicitly. The surrounding service calls
// this when an external cap fires (elapsed time, max questions enforced
// upstream); completing twice is a no-op.
func (m *Manager) Complete(sessionID string) error {
	s, err := m.Get(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.complete()
	return nil
}

// complete marks the terminal state. Caller holds s.mu.
func (s *Session) complete() {
	if s.Status == models.SessionComplete {
		return
	}
	now := time.Now().UTC()
	s.Status = models.SessionComplete
	s.CompletedAt = &now
}

// FinalizeResults reports whether the caller is the first to fold this
// session's results into persistent per-subject state. Exactly one caller
// for a session's lifetime (restarts included, see Resume) gets true.
func (s *Session) FinalizeResults() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return false
	}
	s.finalized = true
	return true
}

// Snapshot copies the session's current state for persistence or reporting
// without racing in-flight mutations.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:               s.ID,
		UserID:           s.UserID,
		Subject:          s.Subject,
		SessionType:      s.SessionType,
		StartedAt:        s.StartedAt,
		CompletedAt:      s.CompletedAt,
		Ability:          s.Ability,
		Status:           s.Status,
		AskedQuestionIDs: append([]string(nil), s.AskedQuestionIDs...),
		Responses:        append([]models.ResponseRecord(nil), s.Responses...),
		Assistance:       append([]models.AssistanceEvent(nil), s.Assistance...),
	}
}
