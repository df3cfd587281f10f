package models

import "time"

type SessionType string

const (
	SessionDiagnostic SessionType = "diagnostic"
	SessionPractice   SessionType = "practice"
	SessionChallenge  SessionType = "challenge"
)

var ValidSessionTypes = map[SessionType]bool{
	SessionDiagnostic: true,
	SessionPractice:   true,
	SessionChallenge:  true,
}

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionComplete   SessionStatus = "complete"
)

// ResponseRecord is one answered question inside a session. Records are
// append-only; once written they are never edited.
type ResponseRecord struct {
	QuestionID          string    `json:"question_id"`
	IsCorrect           bool      `json:"is_correct"`
	ResponseTimeSeconds float64   `json:"response_time_seconds"`
	QuestionDifficulty  float64   `json:"question_difficulty"`
	ReasoningQuality    *float64  `json:"reasoning_quality,omitempty"`
	AnsweredAt          time.Time `json:"answered_at"`
}

// AssistanceEvent records the learner leaning on outside help (hints, AI
// explanations) during a question. It never moves the ability estimate.
type AssistanceEvent struct {
	QuestionID     string    `json:"question_id"`
	AssistanceType string    `json:"assistance_type"`
	Content        string    `json:"content,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// ── API Request/Response Types ────────────────────────────

type StartAssessmentRequest struct {
	Subject        string      `json:"subject"`
	SessionType    SessionType `json:"session_type"`
	GradeLevel     *GradeLevel `json:"grade_level,omitempty"`
	AgeYears       int         `json:"age_years,omitempty"`
	InitialAbility *float64    `json:"initial_ability,omitempty"`
}

type StartAssessmentResponse struct {
	SessionID           string     `json:"session_id"`
	Subject             string     `json:"subject"`
	InitialAbility      float64    `json:"initial_ability_estimate"`
	EstimatedGradeLevel GradeLevel `json:"estimated_grade_level"`
}

// NextQuestionResponse carries either the next question or the completion
// signal with final analytics. Exhausting the pool is not an error.
type NextQuestionResponse struct {
	SessionComplete bool              `json:"session_complete"`
	Question        *ServedQuestion   `json:"question,omitempty"`
	FinalAnalytics  *SessionAnalytics `json:"final_analytics,omitempty"`
}

type SubmitAnswerRequest struct {
	QuestionID          string  `json:"question_id"`
	Answer              string  `json:"answer"`
	ResponseTimeSeconds float64 `json:"response_time_seconds"`
	ReasoningText       string  `json:"reasoning_text,omitempty"`
	AssistanceUsed      bool    `json:"assistance_used"`
	AssistanceType      string  `json:"assistance_type,omitempty"`
	AssistanceContent   string  `json:"assistance_content,omitempty"`
}

type SubmitAnswerResponse struct {
	Correct             bool       `json:"correct"`
	Explanation         string     `json:"explanation,omitempty"`
	PointsEarned        int        `json:"points_earned"`
	NewAbility          float64    `json:"new_ability_estimate"`
	AbilityDelta        float64    `json:"ability_estimate_change"`
	EstimatedGradeLevel GradeLevel `json:"estimated_grade_level"`
	ReasoningQuality    float64    `json:"reasoning_quality_score"`
	QuestionsCompleted  int        `json:"questions_completed"`
	AccuracySoFar       float64    `json:"accuracy_so_far"`
}

type RecordAssistanceRequest struct {
	QuestionID     string `json:"question_id"`
	AssistanceType string `json:"assistance_type"`
	Content        string `json:"content,omitempty"`
}

// ── Analytics ─────────────────────────────────────────────

// TrajectoryPoint is one step of the simulated ability progression used for
// charting. The simulation replays responses against fixed step sizes, so it
// is illustrative and does not reproduce the true per-answer estimates.
type TrajectoryPoint struct {
	QuestionNumber     int     `json:"question_number"`
	AbilityEstimate    float64 `json:"ability_estimate"`
	QuestionDifficulty float64 `json:"question_difficulty"`
	IsCorrect          bool    `json:"is_correct"`
}

type SessionAnalytics struct {
	SessionID            string            `json:"session_id"`
	TotalQuestions       int               `json:"total_questions"`
	Accuracy             float64           `json:"accuracy"`
	FinalAbility         float64           `json:"final_ability_estimate"`
	EstimatedGradeLevel  GradeLevel        `json:"estimated_grade_level"`
	AssistancePercentage float64           `json:"assistance_percentage"`
	AvgResponseTime      float64           `json:"average_response_time"`
	AvgReasoningQuality  float64           `json:"average_reasoning_quality"`
	SessionDuration      float64           `json:"session_duration_seconds"`
	Trajectory           []TrajectoryPoint `json:"learning_trajectory"`
}
