package assessment

// Latency thresholds for weighting an update. A fast answer reflects
// confidence, so it moves the estimate more in either direction; a slow
// answer moves it less.
const (
	fastResponseSeconds = 10.0
	slowResponseSeconds = 60.0

	fastResponseWeight = 1.2
	slowResponseWeight = 0.8
)

// UpdateAbility produces a new ability estimate from a response outcome.
// A correct answer gains more when the question was hard and headroom
// remains; an incorrect answer loses more when the question was easy
// relative to the estimate. When a reasoning-quality score q is supplied
// (reasoningQuality non-nil), the delta scales by (0.8 + 0.4q). Always
// returns a value in [0,1].
func UpdateAbility(ability, questionDifficulty float64, isCorrect bool, responseTimeSeconds float64, reasoningQuality *float64) float64 {
	var delta float64
	if isCorrect {
		delta = 0.1 * (1 - ability) * (1 - questionDifficulty)
	} else {
		delta = -0.1 * ability * questionDifficulty
	}

	if responseTimeSeconds < fastResponseSeconds {
		delta *= fastResponseWeight
	} else if responseTimeSeconds > slowResponseSeconds {
		delta *= slowResponseWeight
	}

	if reasoningQuality != nil {
		delta *= 0.8 + 0.4*clamp01(*reasoningQuality)
	}

	return clamp01(ability + delta)
}
