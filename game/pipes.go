package game

import (
	"math/rand"

	"github.com/skyflap/skyflap-backend/models"
)

// pipeEdgeMargin keeps the gap off the very top and bottom of the screen.
const pipeEdgeMargin = 20

// PlacePipePair produces one upper/lower obstacle pair to the right of
// prevRightmostX. The vertical gap size, the gap's placement, and the
// horizontal spacing are each drawn uniformly from the tier's ranges.
// Pairs are atomic: callers always push both halves together.
func PlacePipePair(prevRightmostX float64, tier Difficulty, screenHeight float64) (upper, lower models.Pipe) {
	ranges := rangesFor(tier)

	verticalGap := randBetween(ranges.verticalGap[0], ranges.verticalGap[1])
	verticalPosition := randBetween(pipeEdgeMargin, int(screenHeight)-pipeEdgeMargin-verticalGap)
	horizontalGap := randBetween(ranges.horizontalGap[0], ranges.horizontalGap[1])

	upper = models.Pipe{X: prevRightmostX + float64(horizontalGap), Y: float64(verticalPosition)}
	lower = models.Pipe{X: upper.X, Y: upper.Y + float64(verticalGap)}
	return upper, lower
}

// rightmostX scans the whole queue for the maximum pipe X (0 when empty).
// Recomputed before every placement rather than tracked incrementally, so
// the value can never drift from the queue's actual contents.
func rightmostX(pairs []models.PipePair) float64 {
	var max float64
	for _, pair := range pairs {
		if pair.Upper.X > max {
			max = pair.Upper.X
		}
		if pair.Lower.X > max {
			max = pair.Lower.X
		}
	}
	return max
}

// randBetween draws uniformly from [min, max] inclusive.
func randBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}
