package models

import "time"

// GradeLevel is an ordered educational level from kindergarten through
// postdoctoral work. Each level owns a sub-range of the [0,1] ability scale
// (see the assessment package's interval table).
type GradeLevel string

const (
	GradeKindergarten  GradeLevel = "kindergarten"
	Grade1             GradeLevel = "grade_1"
	Grade2             GradeLevel = "grade_2"
	Grade3             GradeLevel = "grade_3"
	Grade4             GradeLevel = "grade_4"
	Grade5             GradeLevel = "grade_5"
	Grade6             GradeLevel = "grade_6"
	Grade7             GradeLevel = "grade_7"
	Grade8             GradeLevel = "grade_8"
	Grade9             GradeLevel = "grade_9"
	Grade10            GradeLevel = "grade_10"
	Grade11            GradeLevel = "grade_11"
	Grade12            GradeLevel = "grade_12"
	GradeUndergraduate GradeLevel = "undergraduate"
	GradeGraduate      GradeLevel = "graduate"
	GradeDoctoral      GradeLevel = "doctoral"
	GradePostdoctoral  GradeLevel = "postdoctoral"

	// GradeProfessional spans half the ability scale (working adults of any
	// level). It can seed an initial estimate but is never the result of an
	// ability lookup.
	GradeProfessional GradeLevel = "professional"
)

var ValidGradeLevels = map[GradeLevel]bool{
	GradeKindergarten:  true,
	Grade1:             true,
	Grade2:             true,
	Grade3:             true,
	Grade4:             true,
	Grade5:             true,
	Grade6:             true,
	Grade7:             true,
	Grade8:             true,
	Grade9:             true,
	Grade10:            true,
	Grade11:            true,
	Grade12:            true,
	GradeUndergraduate: true,
	GradeGraduate:      true,
	GradeDoctoral:      true,
	GradePostdoctoral:  true,
	GradeProfessional:  true,
}

// Complexity is the cognitive-load category of a question.
type Complexity string

const (
	ComplexityBasic         Complexity = "basic"
	ComplexityComprehension Complexity = "comprehension"
	ComplexityApplication   Complexity = "application"
	ComplexityAnalysis      Complexity = "analysis"
	ComplexitySynthesis     Complexity = "synthesis"
	ComplexityEvaluation    Complexity = "evaluation"
	ComplexityResearch      Complexity = "research"
)

var ValidComplexities = map[Complexity]bool{
	ComplexityBasic:         true,
	ComplexityComprehension: true,
	ComplexityApplication:   true,
	ComplexityAnalysis:      true,
	ComplexitySynthesis:     true,
	ComplexityEvaluation:    true,
	ComplexityResearch:      true,
}

// QuestionDescriptor is the slice of a question the engine reads to score
// difficulty. It is owned by the question bank and never mutated here.
type QuestionDescriptor struct {
	ID                     string     `json:"id"`
	Subject                string     `json:"subject"`
	Topic                  string     `json:"topic"`
	Complexity             Complexity `json:"complexity"`
	GradeLevel             GradeLevel `json:"grade_level"`
	RequiresPriorKnowledge bool       `json:"requires_prior_knowledge"`
	MultiStep              bool       `json:"multi_step"`
	AbstractReasoning      bool       `json:"abstract_reasoning"`
}

// Question is the full question-bank record.
type Question struct {
	QuestionDescriptor

	QuestionText         string    `json:"question_text"`
	QuestionType         string    `json:"question_type"`
	Options              []string  `json:"options,omitempty"`
	CorrectAnswer        string    `json:"correct_answer,omitempty"`
	Explanation          string    `json:"explanation,omitempty"`
	Points               int       `json:"points"`
	EstimatedTimeSeconds int       `json:"estimated_time_seconds"`
	ThinkAloudPrompts    []string  `json:"think_aloud_prompts,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// ServedQuestion is a Question with answer data stripped, safe to hand to a
// client mid-assessment.
type ServedQuestion struct {
	ID                   string     `json:"id"`
	Subject              string     `json:"subject"`
	Topic                string     `json:"topic"`
	Complexity           Complexity `json:"complexity"`
	GradeLevel           GradeLevel `json:"grade_level"`
	QuestionText         string     `json:"question_text"`
	QuestionType         string     `json:"question_type"`
	Options              []string   `json:"options,omitempty"`
	EstimatedTimeSeconds int        `json:"estimated_time_seconds"`
	ThinkAloudPrompts    []string   `json:"think_aloud_prompts,omitempty"`
	EstimatedDifficulty  float64    `json:"estimated_difficulty"`
	QuestionNumber       int        `json:"question_number"`
	AbilityEstimate      float64    `json:"current_ability_estimate"`
}

type QuestionListResponse struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

type ImportQuestionsRequest struct {
	Questions []Question `json:"questions"`
}

type ImportQuestionsResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type GenerateQuestionsRequest struct {
	Subject    string     `json:"subject"`
	GradeLevel GradeLevel `json:"grade_level"`
	Complexity Complexity `json:"complexity"`
	Count      int        `json:"count"`
}

type GenerateQuestionsResponse struct {
	Questions []Question `json:"questions"`
	Imported  int        `json:"imported"`
	Skipped   int        `json:"skipped"`
	Model     string     `json:"model"`
}
