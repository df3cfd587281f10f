// Package gamification awards XP for assessment work and tracks user levels.
package gamification

// PointsEarned computes the points for one answered question.
//
// A wrong answer starts from zero but can still earn reasoning credit: the
// think-aloud bonus pays up to half the base points scaled by reasoning
// quality, and leaning on AI help costs 30% of whatever was earned.
func PointsEarned(basePoints int, isCorrect bool, reasoningQuality *float64, assistanceUsed bool) int {
	points := 0
	if isCorrect {
		points = basePoints
	}

	if reasoningQuality != nil {
		points += int(float64(basePoints) * 0.5 * *reasoningQuality)
	}

	if assistanceUsed {
		points = int(float64(points) * 0.7)
	}

	return points
}

// LevelForXP maps total XP to a level. Every 100 XP is one level, starting
// at level 1.
func LevelForXP(xp int) int {
	return xp/100 + 1
}

// XPToNextLevel returns how much XP remains until the next level boundary.
func XPToNextLevel(xp int) int {
	return 100 - xp%100
}
