package generator

import (
	"fmt"
	"strings"

	"github.com/skillscan/backend/internal/models"
)

func QuestionSystemPrompt() string {
	return `You are an expert educational content author. You write clear,
unambiguous assessment questions calibrated to a requested grade level and
cognitive complexity.

Rules:
- Every question must have exactly one defensible correct answer.
- Multiple-choice questions need 3-5 options, with the correct answer
  appearing verbatim among the options.
- Short-answer questions take a single word, number, or short expression.
- Explanations teach: state why the answer is right in one or two sentences.
- Think-aloud prompts ask the learner to verbalize strategy, not to restate
  the question.
- Respond ONLY with JSON matching the requested schema. No prose, no code
  fences.`
}

var complexityGuidance = map[models.Complexity]string{
	models.ComplexityBasic:         "simple recall of a single fact or one-step operation",
	models.ComplexityComprehension: "understanding of a concept, restated or compared in the learner's terms",
	models.ComplexityApplication:   "applying a known method to a new concrete situation",
	models.ComplexityAnalysis:      "breaking a situation into parts and reasoning about their relationships",
	models.ComplexitySynthesis:     "combining several concepts or steps into one solution",
	models.ComplexityEvaluation:    "judging between alternatives and defending the choice",
	models.ComplexityResearch:      "open-ended reasoning at the frontier of the topic",
}

func BuildQuestionPrompt(subject string, grade models.GradeLevel, complexity models.Complexity, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write %d assessment questions.\n\n", count)
	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "Grade level: %s\n", grade)
	fmt.Fprintf(&b, "Complexity: %s (%s)\n\n", complexity, complexityGuidance[complexity])

	b.WriteString(`Each question should cover a different topic within the subject.

Return JSON with this exact schema:
{
  "questions": [
    {
      "question_text": "...",
      "question_type": "multiple_choice" or "short_answer",
      "topic": "...",
      "options": ["..."] (multiple_choice only),
      "correct_answer": "...",
      "explanation": "...",
      "multi_step": true/false,
      "abstract_reasoning": true/false,
      "requires_prior_knowledge": true/false,
      "think_aloud_prompts": ["..."]
    }
  ]
}`)

	return b.String()
}
