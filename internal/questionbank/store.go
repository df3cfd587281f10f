// Package questionbank owns the question inventory: storage, import, and the
// candidate pools the assessment engine selects from.
package questionbank

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/skillscan/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const questionCols = `id, subject, topic, complexity, grade_level,
	        requires_prior_knowledge, multi_step, abstract_reasoning,
	        question_text, question_type, options, correct_answer, explanation,
	        points, estimated_time_seconds, think_aloud_prompts, created_at`

func scanQuestion(row interface{ Scan(...interface{}) error }) (*models.Question, error) {
	var q models.Question
	var options, prompts pq.StringArray
	err := row.Scan(&q.ID, &q.Subject, &q.Topic, &q.Complexity, &q.GradeLevel,
		&q.RequiresPriorKnowledge, &q.MultiStep, &q.AbstractReasoning,
		&q.QuestionText, &q.QuestionType, &options, &q.CorrectAnswer, &q.Explanation,
		&q.Points, &q.EstimatedTimeSeconds, &prompts, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	q.Options = []string(options)
	q.ThinkAloudPrompts = []string(prompts)
	return &q, nil
}

func (s *Store) GetQuestion(id string) (*models.Question, error) {
	q, err := scanQuestion(s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1`, questionCols), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

// ListBySubject returns the full candidate pool for a subject. The engine
// needs every candidate's descriptor to maximize information, so this does
// not paginate.
func (s *Store) ListBySubject(subject string) ([]models.Question, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM questions WHERE subject = $1 ORDER BY id`, questionCols),
		subject,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (s *Store) List(subject string, limit, offset int) ([]models.Question, int, error) {
	var total int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM questions WHERE ($1 = '' OR subject = $1)`, subject,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM questions
		 WHERE ($1 = '' OR subject = $1)
		 ORDER BY subject, grade_level, id LIMIT $2 OFFSET $3`, questionCols),
		subject, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, total, rows.Err()
}

func (s *Store) ListSubjects() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT subject FROM questions ORDER BY subject`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func (s *Store) CountQuestions() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

// Import inserts a batch of questions in one transaction. Questions whose
// text already exists for the subject are skipped rather than duplicated, so
// re-importing the same payload is safe.
func (s *Store) Import(ctx context.Context, questions []models.Question) (*models.ImportQuestionsResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result := &models.ImportQuestionsResult{}
	for _, q := range questions {
		var exists bool
		err := tx.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM questions WHERE subject = $1 AND question_text = $2)`,
			q.Subject, q.QuestionText,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("check existing: %w", err)
		}
		if exists {
			result.Skipped++
			continue
		}

		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		_, err = tx.Exec(
			`INSERT INTO questions
			 (id, subject, topic, complexity, grade_level,
			  requires_prior_knowledge, multi_step, abstract_reasoning,
			  question_text, question_type, options, correct_answer, explanation,
			  points, estimated_time_seconds, think_aloud_prompts)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			q.ID, q.Subject, q.Topic, q.Complexity, q.GradeLevel,
			q.RequiresPriorKnowledge, q.MultiStep, q.AbstractReasoning,
			q.QuestionText, q.QuestionType, pq.Array(q.Options), q.CorrectAnswer, q.Explanation,
			q.Points, q.EstimatedTimeSeconds, pq.Array(q.ThinkAloudPrompts),
		)
		if err != nil {
			return nil, fmt.Errorf("insert question: %w", err)
		}
		result.Imported++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return result, nil
}
