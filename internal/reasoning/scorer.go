// Package reasoning scores the quality of a learner's free-text "think-aloud"
// explanation on a [0,1] scale. The Scorer contract is deliberately narrow so
// the default keyword heuristic can be swapped for a model-backed analyzer
// without touching the assessment engine.
package reasoning

import "strings"

// Scorer maps an explanation to a quality score in [0,1].
type Scorer interface {
	Score(text string) float64
}

// indicators are reasoning-connective markers. Each distinct marker found in
// the text contributes 0.1 to the score.
var indicators = []string{
	"because", "therefore", "since", "due to", "as a result",
	"first", "then", "next", "finally", "step",
	"similar", "different", "compare", "contrast",
	"example", "instance", "such as", "like",
	"analyze", "evaluate", "consider", "examine",
}

// Heuristic is the built-in scorer: keyword presence plus length bonuses.
// It is a bounded stand-in for a real language analyzer.
type Heuristic struct{}

func NewHeuristic() Heuristic {
	return Heuristic{}
}

func (Heuristic) Score(text string) float64 {
	lowered := strings.ToLower(text)

	score := 0.0
	for _, indicator := range indicators {
		if strings.Contains(lowered, indicator) {
			score += 0.1
		}
	}

	// Longer explanations tend to carry more actual reasoning.
	if len(lowered) > 50 {
		score += 0.2
	}
	if len(lowered) > 100 {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
