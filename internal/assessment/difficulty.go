package assessment

import "github.com/skillscan/backend/internal/models"

// complexityBase maps a complexity category to its raw difficulty before
// grade-level rescaling. Read-only after initialization.
var complexityBase = map[models.Complexity]float64{
	models.ComplexityBasic:         0.2,
	models.ComplexityComprehension: 0.3,
	models.ComplexityApplication:   0.5,
	models.ComplexityAnalysis:      0.7,
	models.ComplexitySynthesis:     0.8,
	models.ComplexityEvaluation:    0.9,
	models.ComplexityResearch:      0.95,
}

// Structural flag bonuses.
const (
	priorKnowledgeBonus    = 0.10
	multiStepBonus         = 0.10
	abstractReasoningBonus = 0.15
)

// Difficulty scores a question descriptor in [0,1]. The complexity base is
// rescaled into the range owned by the question's grade level, so difficulty
// is grade-relative rather than absolute, then structural bonuses apply.
//
// Unknown complexity falls back to application (0.5) and an unknown grade
// level falls back to grade 8; question-bank data quality is outside this
// engine's control, so degenerate descriptors degrade instead of failing.
// Callers that care should check the descriptor with DescriptorWarnings and
// log what they find.
func Difficulty(d models.QuestionDescriptor) float64 {
	base, ok := complexityBase[d.Complexity]
	if !ok {
		base = complexityBase[models.ComplexityApplication]
	}

	gradeMin, gradeMax, ok := GradeRange(d.GradeLevel)
	if !ok {
		gradeMin, gradeMax, _ = GradeRange(models.Grade8)
	}

	difficulty := gradeMin + base*(gradeMax-gradeMin)

	if d.RequiresPriorKnowledge {
		difficulty += priorKnowledgeBonus
	}
	if d.MultiStep {
		difficulty += multiStepBonus
	}
	if d.AbstractReasoning {
		difficulty += abstractReasoningBonus
	}

	return clamp01(difficulty)
}

// DescriptorWarnings reports the fields Difficulty had to paper over with
// defaults. The engine never rejects a degenerate descriptor; the caller is
// expected to log these.
func DescriptorWarnings(d models.QuestionDescriptor) []string {
	var warnings []string
	if _, ok := complexityBase[d.Complexity]; !ok {
		warnings = append(warnings, "unknown complexity "+string(d.Complexity))
	}
	if _, _, ok := GradeRange(d.GradeLevel); !ok {
		warnings = append(warnings, "unknown grade level "+string(d.GradeLevel))
	}
	return warnings
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
