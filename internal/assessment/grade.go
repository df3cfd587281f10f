package assessment

import "github.com/skillscan/backend/internal/models"

// gradeBand maps one grade level to its slice of the [0,1] ability scale.
type gradeBand struct {
	Level models.GradeLevel
	Min   float64
	Max   float64
}

// gradeBands is the sorted interval table covering [0,1] with no gaps.
// Each band is [Min, Max); the last band includes 1.0. Read-only after
// initialization, so concurrent lookups need no locking.
var gradeBands = []gradeBand{
	{models.GradeKindergarten, 0.0, 0.1},
	{models.Grade1, 0.1, 0.15},
	{models.Grade2, 0.15, 0.2},
	{models.Grade3, 0.2, 0.25},
	{models.Grade4, 0.25, 0.3},
	{models.Grade5, 0.3, 0.35},
	{models.Grade6, 0.35, 0.4},
	{models.Grade7, 0.4, 0.45},
	{models.Grade8, 0.45, 0.5},
	{models.Grade9, 0.5, 0.55},
	{models.Grade10, 0.55, 0.6},
	{models.Grade11, 0.6, 0.65},
	{models.Grade12, 0.65, 0.7},
	{models.GradeUndergraduate, 0.7, 0.8},
	{models.GradeGraduate, 0.8, 0.9},
	{models.GradeDoctoral, 0.9, 0.95},
	{models.GradePostdoctoral, 0.95, 1.0},
}

// professionalBand covers working adults of any level. It overlaps the upper
// bands, so it participates in seeding but never in GradeLevelFor lookups.
var professionalBand = gradeBand{models.GradeProfessional, 0.5, 1.0}

// GradeRange returns the ability range owned by a grade level.
func GradeRange(level models.GradeLevel) (min, max float64, ok bool) {
	if level == models.GradeProfessional {
		return professionalBand.Min, professionalBand.Max, true
	}
	for _, b := range gradeBands {
		if b.Level == level {
			return b.Min, b.Max, true
		}
	}
	return 0, 0, false
}

// InitialAbility seeds a new learner's ability estimate. A known grade level
// wins over age; age interpolates linearly through K-12 (age 6 ≈ 0.05,
// age 18 capped at 0.7) with plateaus for post-secondary ages. With no
// information at all it lands mid-scale.
func InitialAbility(grade models.GradeLevel, ageYears int) float64 {
	if grade != "" {
		if min, max, ok := GradeRange(grade); ok {
			return (min + max) / 2
		}
	}

	if ageYears > 0 {
		switch {
		case ageYears <= 6:
			return 0.05
		case ageYears <= 18:
			ability := 0.05 + float64(ageYears-6)*0.055
			if ability > 0.7 {
				ability = 0.7
			}
			return ability
		case ageYears <= 22:
			return 0.75
		case ageYears <= 26:
			return 0.85
		default:
			return 0.9
		}
	}

	return 0.5
}

// GradeLevelFor returns the grade band containing the ability score.
// Scores outside [0,1] (floating error) clamp to the boundary bands.
func GradeLevelFor(ability float64) models.GradeLevel {
	if ability < gradeBands[0].Min {
		return gradeBands[0].Level
	}
	last := gradeBands[len(gradeBands)-1]
	if ability >= last.Max {
		return last.Level
	}
	for _, b := range gradeBands {
		if ability >= b.Min && ability < b.Max {
			return b.Level
		}
	}
	// Unreachable while the table stays contiguous.
	return models.Grade8
}
