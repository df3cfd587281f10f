package assessment

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/skillscan/backend/internal/models"
)

// Store persists sessions and per-subject ability estimates. The Manager is
// the source of truth while a session is live; the store exists so a session
// survives a process restart and so abilities carry across sessions.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Session Rows ────────────────────────────────────────

func (s *Store) CreateSession(snap Snapshot) error {
	_, err := s.db.Exec(
		`INSERT INTO assessment_sessions
		 (id, user_id, subject, session_type, status, ability, asked_question_ids, started_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		snap.ID, snap.UserID, snap.Subject, snap.SessionType, snap.Status,
		snap.Ability, pq.Array(snap.AskedQuestionIDs), snap.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// SaveSessionState writes back the mutable columns after each engine step.
// Response and assistance rows are appended separately and never rewritten.
func (s *Store) SaveSessionState(snap Snapshot) error {
	_, err := s.db.Exec(
		`UPDATE assessment_sessions
		 SET ability = $1, status = $2, asked_question_ids = $3, completed_at = $4
		 WHERE id = $5`,
		snap.Ability, snap.Status, pq.Array(snap.AskedQuestionIDs), snap.CompletedAt, snap.ID,
	)
	if err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	return nil
}

func (s *Store) AppendResponse(sessionID string, r models.ResponseRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO session_responses
		 (session_id, question_id, is_correct, response_time_seconds,
		  question_difficulty, reasoning_quality, answered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sessionID, r.QuestionID, r.IsCorrect, r.ResponseTimeSeconds,
		r.QuestionDifficulty, r.ReasoningQuality, r.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("append response: %w", err)
	}
	return nil
}

func (s *Store) AppendAssistance(sessionID string, e models.AssistanceEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO assistance_events (session_id, question_id, assistance_type, content, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sessionID, e.QuestionID, e.AssistanceType, e.Content, e.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("append assistance: %w", err)
	}
	return nil
}

// LoadSession reconstructs a session and its logs, e.g. to resume after a
// restart. Returns ErrSessionNotFound when no row exists.
func (s *Store) LoadSession(sessionID string) (*Session, error) {
	session := &Session{}
	var asked pq.StringArray
	err := s.db.QueryRow(
		`SELECT id, user_id, subject, session_type, status, ability,
		        asked_question_ids, started_at, completed_at
		 FROM assessment_sessions WHERE id = $1`,
		sessionID,
	).Scan(&session.ID, &session.UserID, &session.Subject, &session.SessionType,
		&session.Status, &session.Ability, &asked, &session.StartedAt, &session.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	session.AskedQuestionIDs = []string(asked)

	rows, err := s.db.Query(
		`SELECT question_id, is_correct, response_time_seconds,
		        question_difficulty, reasoning_quality, answered_at
		 FROM session_responses WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.ResponseRecord
		if err := rows.Scan(&r.QuestionID, &r.IsCorrect, &r.ResponseTimeSeconds,
			&r.QuestionDifficulty, &r.ReasoningQuality, &r.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		session.Responses = append(session.Responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	aRows, err := s.db.Query(
		`SELECT question_id, assistance_type, content, recorded_at
		 FROM assistance_events WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load assistance: %w", err)
	}
	defer aRows.Close()

	for aRows.Next() {
		var e models.AssistanceEvent
		if err := aRows.Scan(&e.QuestionID, &e.AssistanceType, &e.Content, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan assistance: %w", err)
		}
		session.Assistance = append(session.Assistance, e)
	}
	return session, aRows.Err()
}

// ── Per-Subject Abilities ───────────────────────────────

// SaveAbility folds a finished batch of answers into the user's standing
// estimate for the subject. The row is created on first contact.
func (s *Store) SaveAbility(userID int64, subject string, ability float64, answered, correct int) error {
	_, err := s.db.Exec(
		`INSERT INTO user_subject_abilities
		 (user_id, subject, ability, questions_answered, questions_correct, last_updated)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (user_id, subject)
		 DO UPDATE SET ability = $3,
		               questions_answered = user_subject_abilities.questions_answered + $4,
		               questions_correct = user_subject_abilities.questions_correct + $5,
		               last_updated = NOW()`,
		userID, subject, ability, answered, correct,
	)
	if err != nil {
		return fmt.Errorf("save ability: %w", err)
	}
	return nil
}

// GetAbility returns the standing estimate for a subject, or nil when the
// user has never been assessed in it.
func (s *Store) GetAbility(userID int64, subject string) (*models.UserSubjectAbility, error) {
	var a models.UserSubjectAbility
	err := s.db.QueryRow(
		`SELECT id, user_id, subject, ability, questions_answered, questions_correct, last_updated
		 FROM user_subject_abilities WHERE user_id = $1 AND subject = $2`,
		userID, subject,
	).Scan(&a.ID, &a.UserID, &a.Subject, &a.Ability,
		&a.QuestionsAnswered, &a.QuestionsCorrect, &a.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ability: %w", err)
	}
	return &a, nil
}

func (s *Store) ListAbilities(userID int64) ([]models.UserSubjectAbility, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, subject, ability, questions_answered, questions_correct, last_updated
		 FROM user_subject_abilities WHERE user_id = $1 ORDER BY subject`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list abilities: %w", err)
	}
	defer rows.Close()

	var abilities []models.UserSubjectAbility
	for rows.Next() {
		var a models.UserSubjectAbility
		if err := rows.Scan(&a.ID, &a.UserID, &a.Subject, &a.Ability,
			&a.QuestionsAnswered, &a.QuestionsCorrect, &a.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan ability: %w", err)
		}
		abilities = append(abilities, a)
	}
	return abilities, rows.Err()
}
