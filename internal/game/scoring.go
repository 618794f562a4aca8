package game

import "math"

// The spectrum [0,100] maps onto a half-turn arc: position p sits at angle
// pi - (p/100)*pi. Seven contiguous 4-degree zones fan out around the target
// angle at offsets -3..3, scoring 4 at the center, then 3, 2 and 1 moving
// outward. A guess outside the fan scores 0.
const (
	zoneWidthDegrees = 4
	zoneWidth        = zoneWidthDegrees * math.Pi / 180
	maxZoneOffset    = 3
)

var zoneScores = [maxZoneOffset + 1]int{4, 3, 2, 1}

// MaxScore is awarded for a guess landing in the center zone.
const MaxScore = 4

// angleFor maps a wheel position in [0,100] to its angle on the arc.
func angleFor(position int) float64 {
	return math.Pi - (float64(position)/100)*math.Pi
}

// Score awards 0-4 points for a guess against a target, both positions in
// [0,100].
func Score(target, guess int) int {
	return scoreAngle(angleFor(target), angleFor(guess))
}

// scoreAngle resolves a guess angle against the zone fan around the target
// angle. Zones are checked from the outermost inward with bounds inclusive
// on both sides: no angle inside the fan can fall into a gap between
// adjacent zones, and an angle exactly on a shared boundary takes the
// higher score.
func scoreAngle(targetAngle, guessAngle float64) int {
	score := 0
	for offset := maxZoneOffset; offset >= 0; offset-- {
		for _, o := range [2]int{-offset, offset} {
			center := targetAngle + float64(o)*zoneWidth
			if guessAngle >= center-zoneWidth/2 && guessAngle <= center+zoneWidth/2 {
				score = zoneScores[offset]
			}
		}
	}

	return score
}
