package distribution

import (
	"fmt"
	"slices"
	"sync"
)

const (
	DefaultGridMin    = 0.0
	DefaultGridMax    = 6_000_000.0
	DefaultGridPoints = 1500
)

// PriceGrid is an ordered sequence of prices at which densities are evaluated.
type PriceGrid []float64

// NewPriceGrid returns n evenly spaced prices from min to max, both inclusive.
func NewPriceGrid(min, max float64, n int) (PriceGrid, error) {
	if n < 2 {
		return nil, &InvalidParameterError{Field: "points", Value: float64(n), Reason: "grid needs at least two points"}
	}
	if !(max > min) {
		return nil, &InvalidParameterError{Field: "max", Value: max, Reason: fmt.Sprintf("must exceed min %g", min)}
	}

	grid := make(PriceGrid, n)
	step := (max - min) / float64(n-1)
	for i := range grid {
		grid[i] = min + float64(i)*step
	}
	// Pin the upper bound so it is not subject to accumulated rounding.
	grid[n-1] = max
	return grid, nil
}

var sharedGrid = sync.OnceValue(func() PriceGrid {
	grid, err := NewPriceGrid(DefaultGridMin, DefaultGridMax, DefaultGridPoints)
	if err != nil {
		panic(err)
	}
	return grid
})

// DefaultPriceGrid returns a copy of the shared 1500-point grid over [0, 6,000,000].
func DefaultPriceGrid() PriceGrid {
	return slices.Clone(sharedGrid())
}

// Bounds returns the first and last price of the grid.
func (g PriceGrid) Bounds() (float64, float64) {
	if len(g) == 0 {
		return 0, 0
	}
	return g[0], g[len(g)-1]
}
