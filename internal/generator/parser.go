package generator

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillscan/backend/internal/models"
)

type GeneratedBatch struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	QuestionText           string   `json:"question_text"`
	QuestionType           string   `json:"question_type"`
	Topic                  string   `json:"topic"`
	Options                []string `json:"options"`
	CorrectAnswer          string   `json:"correct_answer"`
	Explanation            string   `json:"explanation"`
	MultiStep              bool     `json:"multi_step"`
	AbstractReasoning      bool     `json:"abstract_reasoning"`
	RequiresPriorKnowledge bool     `json:"requires_prior_knowledge"`
	ThinkAloudPrompts      []string `json:"think_aloud_prompts"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

var validQuestionTypes = map[string]bool{"multiple_choice": true, "short_answer": true}

// ParseResponse decodes a model response into ready-to-import questions,
// filling in the subject, grade, and complexity the batch was requested for.
func ParseResponse(responseBody, subject string, grade models.GradeLevel, complexity models.Complexity) ([]models.Question, error) {
	cleaned := stripCodeFences(responseBody)

	var batch GeneratedBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateBatch(&batch); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	questions := make([]models.Question, 0, len(batch.Questions))
	for _, g := range batch.Questions {
		questions = append(questions, models.Question{
			QuestionDescriptor: models.QuestionDescriptor{
				ID:                     uuid.NewString(),
				Subject:                subject,
				Topic:                  g.Topic,
				Complexity:             complexity,
				GradeLevel:             grade,
				RequiresPriorKnowledge: g.RequiresPriorKnowledge,
				MultiStep:              g.MultiStep,
				AbstractReasoning:      g.AbstractReasoning,
			},
			QuestionText:         g.QuestionText,
			QuestionType:         g.QuestionType,
			Options:              g.Options,
			CorrectAnswer:        g.CorrectAnswer,
			Explanation:          g.Explanation,
			Points:               10,
			EstimatedTimeSeconds: 60,
			ThinkAloudPrompts:    g.ThinkAloudPrompts,
			CreatedAt:            now,
		})
	}

	return questions, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateBatch(batch *GeneratedBatch) error {
	var errs []string

	if len(batch.Questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in batch"}}
	}

	for i, q := range batch.Questions {
		qNum := i + 1

		if strings.TrimSpace(q.QuestionText) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question_text", qNum))
		}

		if !validQuestionTypes[q.QuestionType] {
			errs = append(errs, fmt.Sprintf("question %d: invalid question_type %q", qNum, q.QuestionType))
		}

		if strings.TrimSpace(q.CorrectAnswer) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty correct_answer", qNum))
			continue
		}

		if q.QuestionType == "multiple_choice" {
			if len(q.Options) < 3 || len(q.Options) > 5 {
				errs = append(errs, fmt.Sprintf("question %d: expected 3-5 options, got %d", qNum, len(q.Options)))
			}
			found := false
			for _, opt := range q.Options {
				if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(q.CorrectAnswer)) {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Sprintf("question %d: correct_answer %q not among options", qNum, q.CorrectAnswer))
			}
		}

		if q.Explanation == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty explanation", qNum))
		}

		if q.Topic == "" {
			log.Printf("WARNING: question %d has no topic", qNum)
		}
	}

	checkTopicDiversity(batch.Questions)

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}

// checkTopicDiversity warns if any two question texts share >60% keyword overlap.
func checkTopicDiversity(questions []GeneratedQuestion) {
	if len(questions) < 2 {
		return
	}

	tokenSets := make([]map[string]bool, len(questions))
	for i, q := range questions {
		tokenSets[i] = tokenize(q.QuestionText)
	}

	for i := 0; i < len(questions); i++ {
		for j := i + 1; j < len(questions); j++ {
			overlap := jaccardSimilarity(tokenSets[i], tokenSets[j])
			if overlap > 0.60 {
				log.Printf("WARNING: questions %d and %d have %.0f%% keyword overlap, consider more topic diversity", i+1, j+1, overlap*100)
			}
		}
	}
}

func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		// Skip very short words (articles, prepositions)
		if len(word) > 3 {
			tokens[word] = true
		}
	}
	return tokens
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
