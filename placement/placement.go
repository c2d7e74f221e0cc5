// Package placement generates non-overlapping stimulus positions inside a
// bounded region by rejection sampling.
package placement

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrInfeasible is returned when the attempt budget runs out before the
// requested number of positions could be placed. The sampler itself cannot
// prove infeasibility, so a generous budget stands in for a proof.
var ErrInfeasible = errors.New("placement: configuration infeasible")

// maxAttempts bounds the total number of candidate draws per Generate call.
// A feasible configuration of up to ten points in the default region is
// found within a few dozen draws; hitting this limit means the caller asked
// for more points than the region can hold at the given separation.
const maxAttempts = 100000

// Position is a stimulus center in stimulus-space coordinates, origin at the
// region center, y increasing upward.
type Position struct {
	X, Y float64
}

// Dist returns the Euclidean distance to another position.
func (p Position) Dist(q Position) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Region is a centered rectangle with an inward margin. Stimulus centers are
// confined to the rectangle inset by Margin plus the minimum separation on
// each side, so a stimulus never touches the frame.
type Region struct {
	Width  float64
	Height float64
	Margin float64
}

// Bounds returns the placeable half-extents for the given minimum
// separation. Both must be positive for the region to be usable.
func (r Region) Bounds(minDist float64) (halfW, halfH float64) {
	halfW = r.Width/2 - r.Margin - minDist
	halfH = r.Height/2 - r.Margin - minDist
	return halfW, halfH
}

// Generate places count positions inside the region such that every pair is
// separated by strictly more than minDist. Candidates are drawn uniformly
// over the placeable sub-rectangle and rejected on conflict until enough are
// accepted or the attempt budget is spent.
func Generate(rng *rand.Rand, count int, region Region, minDist float64) ([]Position, error) {
	if count < 0 {
		return nil, fmt.Errorf("placement: negative count %d", count)
	}
	if minDist <= 0 {
		return nil, fmt.Errorf("placement: minimum distance must be positive, got %v", minDist)
	}
	halfW, halfH := region.Bounds(minDist)
	if halfW <= 0 || halfH <= 0 {
		return nil, fmt.Errorf("placement: region %vx%v margin %v leaves no placeable area at separation %v",
			region.Width, region.Height, region.Margin, minDist)
	}

	positions := make([]Position, 0, count)
	for attempts := 0; len(positions) < count; attempts++ {
		if attempts >= maxAttempts {
			return nil, fmt.Errorf("placement: %d of %d positions after %d attempts: %w",
				len(positions), count, attempts, ErrInfeasible)
		}

		candidate := Position{
			X: (rng.Float64()*2 - 1) * halfW,
			Y: (rng.Float64()*2 - 1) * halfH,
		}

		clear := true
		for _, p := range positions {
			if candidate.Dist(p) <= minDist {
				clear = false
				break
			}
		}
		if clear {
			positions = append(positions, candidate)
		}
	}
	return positions, nil
}
