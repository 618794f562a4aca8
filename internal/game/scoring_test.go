package game

import (
	"math"
	"testing"
)

func TestScore_ExactHit(t *testing.T) {
	for target := MinTarget; target <= MaxTarget; target++ {
		if got := Score(target, target); got != MaxScore {
			t.Errorf("Score(%d, %d) = %d, want %d", target, target, got, MaxScore)
		}
	}
}

func TestScore_ZoneBands(t *testing.T) {
	// One wheel position is 1.8 degrees, one zone is 4 degrees, so a delta
	// of k positions is 1.8k degrees from the target angle.
	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"center zone", 1, 4},          // 1.8 degrees, within +/-2
		{"adjacent zone", 2, 3},        // 3.6 degrees
		{"adjacent zone outer", 3, 3},  // 5.4 degrees, still under 6
		{"second zone", 4, 2},          // 7.2 degrees
		{"second zone outer", 5, 2},    // 9.0 degrees
		{"outer zone", 6, 1},           // 10.8 degrees
		{"outer zone edge", 7, 1},      // 12.6 degrees, under 14
		{"just past the fan", 8, 0},    // 14.4 degrees
		{"far past the fan", 20, 0},
	}

	const target = 50
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(target, target+tt.delta); got != tt.want {
				t.Errorf("Score(%d, %d) = %d, want %d", target, target+tt.delta, got, tt.want)
			}
		})
	}
}

func TestScore_SymmetricOffsets(t *testing.T) {
	for target := MinTarget; target <= MaxTarget; target += 5 {
		for k := 1; k <= 10; k++ {
			right := Score(target, target+k)
			left := Score(target, target-k)
			if right != left {
				t.Errorf("Score(%d, %d) = %d but Score(%d, %d) = %d", target, target+k, right, target, target-k, left)
			}
		}
	}
}

func TestScore_NoGapsAcrossTheFan(t *testing.T) {
	// Every guess inside the fan must land in some zone; the score may only
	// step down as the guess moves away from the target.
	const target = 50
	prev := MaxScore
	for guess := target; guess <= target+7; guess++ {
		got := Score(target, guess)
		if got == 0 {
			t.Errorf("Score(%d, %d) = 0 inside the scoring fan", target, guess)
		}
		if got > prev {
			t.Errorf("Score(%d, %d) = %d, increased from %d while moving outward", target, guess, got, prev)
		}
		prev = got
	}
}

func TestScore_BoundaryFavorsInnerZone(t *testing.T) {
	// Integer positions step in 1.8-degree increments and never land exactly
	// on a 2/6/10/14-degree zone edge, so the resolution rule is exercised
	// on the angle form Score delegates to.
	targetAngle := angleFor(50)

	// The outer edge of each zone is the shared boundary with the next zone
	// out; landing exactly on it must award the inner zone's score.
	for offset := 0; offset <= maxZoneOffset; offset++ {
		want := zoneScores[offset]

		outerEdge := (targetAngle + float64(offset)*zoneWidth) + zoneWidth/2
		if got := scoreAngle(targetAngle, outerEdge); got != want {
			t.Errorf("boundary at offset +%d = %d, want %d", offset, got, want)
		}

		mirrorEdge := (targetAngle + float64(-offset)*zoneWidth) - zoneWidth/2
		if got := scoreAngle(targetAngle, mirrorEdge); got != want {
			t.Errorf("boundary at offset -%d = %d, want %d", offset, got, want)
		}
	}

	// Just past the outermost edge the fan ends.
	pastFan := targetAngle + float64(maxZoneOffset)*zoneWidth + zoneWidth/2 + zoneWidth/100
	if got := scoreAngle(targetAngle, pastFan); got != 0 {
		t.Errorf("scoreAngle just past the fan = %d, want 0", got)
	}
}

func TestScore_FanStaysOnWheel(t *testing.T) {
	// For every target the generator can produce, the outermost zone edges
	// must stay within the half-turn arc.
	halfFan := (float64(maxZoneOffset) + 0.5) * zoneWidth
	for target := MinTarget; target <= MaxTarget; target++ {
		angle := angleFor(target)
		if angle-halfFan < 0 || angle+halfFan > math.Pi {
			t.Errorf("target %d: scoring fan extends past the wheel", target)
		}
	}
}

func TestScore_ClampedRangeStillScores(t *testing.T) {
	// Guesses at the extremes of the wheel are valid inputs.
	if got := Score(MinTarget, 0); got < 0 || got > MaxScore {
		t.Errorf("Score(%d, 0) = %d, out of range", MinTarget, got)
	}
	if got := Score(MaxTarget, 100); got < 0 || got > MaxScore {
		t.Errorf("Score(%d, 100) = %d, out of range", MaxTarget, got)
	}
}
