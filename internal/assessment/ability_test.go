package assessment

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestUpdateAbilityCorrectFast(t *testing.T) {
	// delta = 0.1 * (1-0.5) * (1-0.475) = 0.02625, ×1.2 fast = 0.0315
	got := UpdateAbility(0.5, 0.475, true, 5, nil)
	if math.Abs(got-0.5315) > 1e-9 {
		t.Errorf("UpdateAbility(0.5, 0.475, correct, 5s) = %f, want 0.5315", got)
	}
}

func TestUpdateAbilityDirection(t *testing.T) {
	abilities := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	difficulties := []float64{0.2, 0.5, 0.8}

	for _, a := range abilities {
		for _, d := range difficulties {
			up := UpdateAbility(a, d, true, 30, nil)
			if up < a {
				t.Errorf("correct answer decreased ability: %f → %f (difficulty %f)", a, up, d)
			}
			down := UpdateAbility(a, d, false, 30, nil)
			if down > a {
				t.Errorf("incorrect answer increased ability: %f → %f (difficulty %f)", a, down, d)
			}
		}
	}
}

func TestUpdateAbilityLatencyWeighting(t *testing.T) {
	normal := UpdateAbility(0.5, 0.5, true, 30, nil) - 0.5
	fast := UpdateAbility(0.5, 0.5, true, 5, nil) - 0.5
	slow := UpdateAbility(0.5, 0.5, true, 90, nil) - 0.5

	if fast <= normal {
		t.Errorf("fast delta %f should exceed normal delta %f", fast, normal)
	}
	if slow >= normal {
		t.Errorf("slow delta %f should be below normal delta %f", slow, normal)
	}

	if math.Abs(fast-normal*1.2) > 1e-9 {
		t.Errorf("fast weighting: got %f, want %f", fast, normal*1.2)
	}
	if math.Abs(slow-normal*0.8) > 1e-9 {
		t.Errorf("slow weighting: got %f, want %f", slow, normal*0.8)
	}
}

func TestUpdateAbilityReasoningWeighting(t *testing.T) {
	// q=0.5 gives multiplier 1.0 — identical to no think-aloud data
	plain := UpdateAbility(0.5, 0.5, true, 30, nil)
	neutral := UpdateAbility(0.5, 0.5, true, 30, floatPtr(0.5))
	if math.Abs(plain-neutral) > 1e-9 {
		t.Errorf("neutral reasoning quality changed the update: %f vs %f", plain, neutral)
	}

	// Higher q never shrinks a positive delta
	low := UpdateAbility(0.5, 0.5, true, 30, floatPtr(0.0)) - 0.5
	high := UpdateAbility(0.5, 0.5, true, 30, floatPtr(1.0)) - 0.5
	if high <= low {
		t.Errorf("high reasoning quality delta %f should exceed low %f", high, low)
	}

	// Multiplier spans 0.8 to 1.2 of the base delta
	base := plain - 0.5
	if math.Abs(low-base*0.8) > 1e-9 {
		t.Errorf("q=0 delta: got %f, want %f", low, base*0.8)
	}
	if math.Abs(high-base*1.2) > 1e-9 {
		t.Errorf("q=1 delta: got %f, want %f", high, base*1.2)
	}
}

func TestUpdateAbilityBounds(t *testing.T) {
	// Repeated extremes never escape [0,1]
	ability := 0.99
	for i := 0; i < 50; i++ {
		ability = UpdateAbility(ability, 0.05, true, 5, floatPtr(1.0))
		if ability < 0 || ability > 1 {
			t.Fatalf("ability escaped bounds going up: %f", ability)
		}
	}

	ability = 0.01
	for i := 0; i < 50; i++ {
		ability = UpdateAbility(ability, 0.95, false, 5, floatPtr(1.0))
		if ability < 0 || ability > 1 {
			t.Fatalf("ability escaped bounds going down: %f", ability)
		}
	}
}

func TestUpdateAbilityScalesWithHeadroom(t *testing.T) {
	// Gains shrink as the estimate climbs: less headroom, smaller steps
	lowGain := UpdateAbility(0.2, 0.5, true, 30, nil) - 0.2
	highGain := UpdateAbility(0.8, 0.5, true, 30, nil) - 0.8
	if highGain >= lowGain {
		t.Errorf("gain at 0.8 (%f) should be below gain at 0.2 (%f)", highGain, lowGain)
	}

	// Losses grow with the estimate: a strong learner missing a question of
	// matched difficulty loses more than a weak one
	lowLoss := 0.2 - UpdateAbility(0.2, 0.5, false, 30, nil)
	highLoss := 0.8 - UpdateAbility(0.8, 0.5, false, 30, nil)
	if highLoss <= lowLoss {
		t.Errorf("loss at 0.8 (%f) should exceed loss at 0.2 (%f)", highLoss, lowLoss)
	}
}
