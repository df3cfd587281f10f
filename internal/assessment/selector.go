package assessment

import (
	"math"

	"github.com/skillscan/backend/internal/models"
)

// discrimination is the slope constant of the one-parameter logistic
// response model.
const discrimination = 1.7

// ResponseProbability is the modeled chance a learner at the given ability
// answers a question of the given difficulty correctly.
func ResponseProbability(ability, difficulty float64) float64 {
	return 1 / (1 + math.Exp(-discrimination*(ability-difficulty)))
}

// Information is the simplified Fisher information p(1-p): how much a
// question at this difficulty would sharpen the ability estimate. It peaks
// when difficulty matches ability.
func Information(ability, difficulty float64) float64 {
	p := ResponseProbability(ability, difficulty)
	return p * (1 - p)
}

// SelectNext picks the not-yet-asked candidate that maximizes information at
// the current ability estimate. Equal-information candidates resolve to the
// lowest question id, so selection does not depend on how the caller ordered
// the pool. Returns nil when every candidate has already been asked; that is
// the session's natural completion signal, not an error.
func SelectNext(ability float64, asked map[string]bool, pool []models.QuestionDescriptor) *models.QuestionDescriptor {
	var best *models.QuestionDescriptor
	var bestInfo float64

	for i := range pool {
		candidate := &pool[i]
		if asked[candidate.ID] {
			continue
		}

		info := Information(ability, Difficulty(*candidate))
		switch {
		case best == nil, info > bestInfo:
			best = candidate
			bestInfo = info
		case info == bestInfo && candidate.ID < best.ID:
			best = candidate
		}
	}

	return best
}
