package reasoning

import (
	"math"
	"strings"
	"testing"
)

func TestHeuristicEmptyText(t *testing.T) {
	if got := NewHeuristic().Score(""); got != 0 {
		t.Errorf("empty text scored %f, want 0", got)
	}
}

func TestHeuristicIndicatorCounting(t *testing.T) {
	h := NewHeuristic()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"no indicators", "the answer is 7", 0.0},
		{"one indicator", "it is 7 because", 0.1},
		{"two indicators", "first it is because", 0.2},
		{"case insensitive", "BECAUSE", 0.1},
		{"indicator counted once", "because because because", 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Score(tt.text)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score(%q) = %f, want %f", tt.text, got, tt.want)
			}
		})
	}
}

func TestHeuristicLengthBonuses(t *testing.T) {
	h := NewHeuristic()

	short := strings.Repeat("x", 40)
	medium := strings.Repeat("x", 60)
	long := strings.Repeat("x", 120)

	if got := h.Score(short); got != 0 {
		t.Errorf("40 chars scored %f, want 0", got)
	}
	if got := h.Score(medium); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("60 chars scored %f, want 0.2", got)
	}
	if got := h.Score(long); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("120 chars scored %f, want 0.4", got)
	}
}

func TestHeuristicCappedAtOne(t *testing.T) {
	h := NewHeuristic()

	// Every indicator plus both length bonuses far exceeds the cap.
	text := strings.Join(indicators, " ") + " " + strings.Repeat("pad ", 30)
	if got := h.Score(text); got != 1.0 {
		t.Errorf("saturated text scored %f, want 1.0", got)
	}
}

func TestHeuristicCombined(t *testing.T) {
	h := NewHeuristic()

	// Two indicators (0.2) plus the >50-char bonus (0.2).
	text := "first we add the numbers, then we divide by the count to go"
	if len(text) <= 50 || len(text) > 100 {
		t.Fatalf("fixture length %d outside intended range", len(text))
	}
	if got := h.Score(text); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("Score = %f, want 0.4", got)
	}
}
