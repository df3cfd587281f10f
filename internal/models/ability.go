package models

import "time"

// UserSubjectAbility is the persisted per-(user, subject) ability estimate
// carried across sessions. The in-session estimate lives in the engine; this
// row is written back when a session ends and seeds the next one.
type UserSubjectAbility struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Subject           string    `json:"subject"`
	Ability           float64   `json:"ability"`
	QuestionsAnswered int       `json:"questions_answered"`
	QuestionsCorrect  int       `json:"questions_correct"`
	LastUpdated       time.Time `json:"last_updated"`
}

type AbilityResponse struct {
	Abilities []SubjectAbility `json:"abilities"`
}

type SubjectAbility struct {
	Subject             string     `json:"subject"`
	Ability             float64    `json:"ability"`
	EstimatedGradeLevel GradeLevel `json:"estimated_grade_level"`
	QuestionsAnswered   int        `json:"questions_answered"`
	Accuracy            float64    `json:"accuracy"`
}
