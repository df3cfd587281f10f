package generator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/skillscan/backend/internal/models"
)

func validBatchJSON(count int) string {
	batch := GeneratedBatch{Questions: make([]GeneratedQuestion, count)}

	for i := 0; i < count; i++ {
		batch.Questions[i] = GeneratedQuestion{
			QuestionText:      "What is the value of the expression when simplified step by step?",
			QuestionType:      "multiple_choice",
			Topic:             "arithmetic",
			Options:           []string{"10", "12", "14", "16"},
			CorrectAnswer:     "12",
			Explanation:       "Adding the terms and reducing gives 12.",
			MultiStep:         true,
			ThinkAloudPrompts: []string{"What operation do you do first?"},
		}
	}

	data, _ := json.Marshal(batch)
	return string(data)
}

func TestParseResponse_ValidJSON(t *testing.T) {
	input := validBatchJSON(3)

	questions, err := ParseResponse(input, "mathematics", models.Grade6, models.ComplexityApplication)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}

	for i, q := range questions {
		if q.ID == "" {
			t.Errorf("question %d: empty id", i+1)
		}
		if q.Subject != "mathematics" {
			t.Errorf("question %d: expected subject mathematics, got %q", i+1, q.Subject)
		}
		if q.GradeLevel != models.Grade6 {
			t.Errorf("question %d: expected grade_6, got %q", i+1, q.GradeLevel)
		}
		if q.Complexity != models.ComplexityApplication {
			t.Errorf("question %d: expected application, got %q", i+1, q.Complexity)
		}
		if q.Points != 10 {
			t.Errorf("question %d: expected 10 points, got %d", i+1, q.Points)
		}
	}
}

func TestParseResponse_MarkdownFences(t *testing.T) {
	input := "```json\n" + validBatchJSON(2) + "\n```"

	questions, err := ParseResponse(input, "mathematics", models.Grade6, models.ComplexityBasic)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}

	if len(questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(questions))
	}
}

func TestParseResponse_CorrectAnswerNotInOptions(t *testing.T) {
	batch := GeneratedBatch{
		Questions: []GeneratedQuestion{
			{
				QuestionText:  "Which planet is closest to the sun?",
				QuestionType:  "multiple_choice",
				Topic:         "astronomy",
				Options:       []string{"Venus", "Earth", "Mars"},
				CorrectAnswer: "Mercury",
				Explanation:   "Mercury orbits closest to the sun.",
			},
		},
	}
	data, _ := json.Marshal(batch)

	_, err := ParseResponse(string(data), "science", models.Grade4, models.ComplexityBasic)
	if err == nil {
		t.Fatal("expected validation error when correct answer is not among options")
	}

	var ve *ValidationError
	if !isValidationError(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}

	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "not among options") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error about options, got: %v", ve.Errors)
	}
}

func TestParseResponse_InvalidQuestionType(t *testing.T) {
	batch := GeneratedBatch{
		Questions: []GeneratedQuestion{
			{
				QuestionText:  "Describe photosynthesis in your own words.",
				QuestionType:  "essay",
				Topic:         "biology",
				CorrectAnswer: "plants convert light to energy",
				Explanation:   "Photosynthesis converts light into chemical energy.",
			},
		},
	}
	data, _ := json.Marshal(batch)

	_, err := ParseResponse(string(data), "science", models.Grade7, models.ComplexityComprehension)
	if err == nil {
		t.Fatal("expected validation error for invalid question_type")
	}

	var ve *ValidationError
	if !isValidationError(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}

	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "invalid question_type") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error about question_type, got: %v", ve.Errors)
	}
}

func TestParseResponse_EmptyBatch(t *testing.T) {
	_, err := ParseResponse(`{"questions":[]}`, "mathematics", models.Grade6, models.ComplexityBasic)
	if err == nil {
		t.Fatal("expected validation error for empty batch")
	}
}

func TestParseResponse_MalformedJSON(t *testing.T) {
	_, err := ParseResponse("this is not json at all", "mathematics", models.Grade6, models.ComplexityBasic)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}

	// Should NOT be a ValidationError — should be a parse error
	var ve *ValidationError
	if isValidationError(err, &ve) {
		t.Fatal("expected parse error, not ValidationError")
	}
}

func TestParseResponse_ShortAnswerSkipsOptionCheck(t *testing.T) {
	batch := GeneratedBatch{
		Questions: []GeneratedQuestion{
			{
				QuestionText:  "What is 7 times 8?",
				QuestionType:  "short_answer",
				Topic:         "multiplication",
				CorrectAnswer: "56",
				Explanation:   "7 groups of 8 make 56.",
			},
		},
	}
	data, _ := json.Marshal(batch)

	questions, err := ParseResponse(string(data), "mathematics", models.Grade3, models.ComplexityBasic)
	if err != nil {
		t.Fatalf("expected no error for short_answer question, got: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if len(questions[0].Options) != 0 {
		t.Errorf("expected no options, got %v", questions[0].Options)
	}
}

// isValidationError checks if err is a *ValidationError via type assertion
func isValidationError(err error, target **ValidationError) bool {
	ve, ok := err.(*ValidationError)
	if ok && target != nil {
		*target = ve
	}
	return ok
}
