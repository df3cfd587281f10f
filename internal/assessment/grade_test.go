package assessment

import (
	"math"
	"testing"

	"github.com/skillscan/backend/internal/models"
)

func TestInitialAbilityFromGrade(t *testing.T) {
	// Grade 8 owns (0.45, 0.5) → midpoint 0.475
	got := InitialAbility(models.Grade8, 0)
	if math.Abs(got-0.475) > 1e-9 {
		t.Errorf("InitialAbility(grade_8) = %f, want 0.475", got)
	}

	got = InitialAbility(models.GradeKindergarten, 0)
	if math.Abs(got-0.05) > 1e-9 {
		t.Errorf("InitialAbility(kindergarten) = %f, want 0.05", got)
	}

	got = InitialAbility(models.GradePostdoctoral, 0)
	if math.Abs(got-0.975) > 1e-9 {
		t.Errorf("InitialAbility(postdoctoral) = %f, want 0.975", got)
	}

	// Professional spans (0.5, 1.0)
	got = InitialAbility(models.GradeProfessional, 0)
	if math.Abs(got-0.75) > 1e-9 {
		t.Errorf("InitialAbility(professional) = %f, want 0.75", got)
	}

	// Grade level wins over age when both are present
	got = InitialAbility(models.Grade3, 40)
	if math.Abs(got-0.225) > 1e-9 {
		t.Errorf("InitialAbility(grade_3, age 40) = %f, want 0.225", got)
	}
}

func TestInitialAbilityFromAge(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{5, 0.05},
		{6, 0.05},
		{10, 0.27}, // 0.05 + 4*0.055
		{14, 0.49}, // 0.05 + 8*0.055
		{18, 0.7},  // capped
		{20, 0.75}, // undergraduate plateau
		{24, 0.85}, // graduate plateau
		{30, 0.9},  // advanced plateau
	}

	for _, tt := range tests {
		got := InitialAbility("", tt.age)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("InitialAbility(age=%d) = %f, want %f", tt.age, got, tt.want)
		}
	}
}

func TestInitialAbilityDefault(t *testing.T) {
	// No grade, no age → mid scale (middle school)
	got := InitialAbility("", 0)
	if got != 0.5 {
		t.Errorf("InitialAbility() = %f, want 0.5", got)
	}

	// An unknown grade level also falls through to the default
	got = InitialAbility(models.GradeLevel("montessori"), 0)
	if got != 0.5 {
		t.Errorf("InitialAbility(unknown grade) = %f, want 0.5", got)
	}
}

func TestGradeLevelFor(t *testing.T) {
	tests := []struct {
		ability float64
		want    models.GradeLevel
	}{
		{0.0, models.GradeKindergarten},
		{0.05, models.GradeKindergarten},
		{0.1, models.Grade1}, // band boundaries belong to the upper band
		{0.475, models.Grade8},
		{0.72, models.GradeUndergraduate},
		{0.92, models.GradeDoctoral},
		{1.0, models.GradePostdoctoral},
	}

	for _, tt := range tests {
		got := GradeLevelFor(tt.ability)
		if got != tt.want {
			t.Errorf("GradeLevelFor(%f) = %s, want %s", tt.ability, got, tt.want)
		}
	}
}

func TestGradeLevelForClampsOutOfRange(t *testing.T) {
	if got := GradeLevelFor(-0.01); got != models.GradeKindergarten {
		t.Errorf("GradeLevelFor(-0.01) = %s, want kindergarten", got)
	}
	if got := GradeLevelFor(1.5); got != models.GradePostdoctoral {
		t.Errorf("GradeLevelFor(1.5) = %s, want postdoctoral", got)
	}
}

func TestGradeBandsContiguous(t *testing.T) {
	if gradeBands[0].Min != 0.0 {
		t.Errorf("first band starts at %f, want 0.0", gradeBands[0].Min)
	}
	if gradeBands[len(gradeBands)-1].Max != 1.0 {
		t.Errorf("last band ends at %f, want 1.0", gradeBands[len(gradeBands)-1].Max)
	}

	for i := 1; i < len(gradeBands); i++ {
		prev, cur := gradeBands[i-1], gradeBands[i]
		if prev.Max != cur.Min {
			t.Errorf("gap between %s (ends %f) and %s (starts %f)",
				prev.Level, prev.Max, cur.Level, cur.Min)
		}
		if cur.Min >= cur.Max {
			t.Errorf("band %s has non-positive width (%f, %f)", cur.Level, cur.Min, cur.Max)
		}
	}
}

func TestGradeLevelForIsStable(t *testing.T) {
	for i := 0; i <= 100; i++ {
		ability := float64(i) / 100
		first := GradeLevelFor(ability)
		second := GradeLevelFor(ability)
		if first != second {
			t.Errorf("GradeLevelFor(%f) unstable: %s then %s", ability, first, second)
		}
	}
}
