package distribution

import (
	"math"
	"strconv"
)

// CategoryParams describes a normal price distribution for one category.
type CategoryParams struct {
	Name   Category
	Mean   float64
	StdDev float64
}

// Multiplier scales a population distribution into its for-sale variant.
type Multiplier struct {
	MeanMultiplier float64
	StdMultiplier  float64
}

// IdentityMultiplier leaves the population distribution unchanged.
var IdentityMultiplier = Multiplier{MeanMultiplier: 1, StdMultiplier: 1}

// DensityCurve holds density values aligned index-for-index with a PriceGrid.
type DensityCurve []float64

// Average is a weighted average that may be unavailable when the total weight is zero.
type Average struct {
	Value     float64
	Available bool
}

func (a Average) String() string {
	if !a.Available {
		return "not available"
	}
	return strconv.FormatFloat(a.Value, 'f', 2, 64)
}

// ComparisonRow is one price point with the population and for-sale densities.
type ComparisonRow struct {
	Price      float64
	Population float64
	ForSale    float64
}

// ComparisonTable lines up two density curves against their grid.
type ComparisonTable []ComparisonRow

// DeriveForSale scales pop by mult. The for-sale distribution is never edited
// directly, it is always recomputed from the population and its multiplier.
func DeriveForSale(pop CategoryParams, mult Multiplier) (CategoryParams, error) {
	if err := mustBePositive("meanMultiplier", mult.MeanMultiplier); err != nil {
		return CategoryParams{}, err
	}
	if err := mustBePositive("stdMultiplier", mult.StdMultiplier); err != nil {
		return CategoryParams{}, err
	}
	if err := mustBePositive("stdDev", pop.StdDev); err != nil {
		return CategoryParams{}, err
	}

	return CategoryParams{
		Name:   pop.Name,
		Mean:   pop.Mean * mult.MeanMultiplier,
		StdDev: pop.StdDev * mult.StdMultiplier,
	}, nil
}

// NormalDensity evaluates the Gaussian PDF for params at every grid price.
func NormalDensity(grid PriceGrid, params CategoryParams) (DensityCurve, error) {
	if err := mustBePositive("stdDev", params.StdDev); err != nil {
		return nil, err
	}

	norm := 1 / (params.StdDev * math.Sqrt(2*math.Pi))
	curve := make(DensityCurve, len(grid))
	for i, p := range grid {
		z := (p - params.Mean) / params.StdDev
		curve[i] = norm * math.Exp(-0.5*z*z)
	}
	return curve, nil
}

// WeightedAverage computes Σ(values[i]·counts[i]) / Σ(counts[i]).
// The result is unavailable when all counts are zero.
func WeightedAverage(values []float64, counts []int) (Average, error) {
	if len(values) != len(counts) {
		return Average{}, &DimensionMismatchError{Operation: "weighted average", Lengths: []int{len(values), len(counts)}}
	}

	var weighted float64
	var total int
	for i, c := range counts {
		if c < 0 {
			return Average{}, &InvalidParameterError{
				Field:  "counts[" + strconv.Itoa(i) + "]",
				Value:  float64(c),
				Reason: "must not be negative",
			}
		}
		if total > math.MaxInt-c {
			return Average{}, &InvalidParameterError{
				Field:  "counts[" + strconv.Itoa(i) + "]",
				Value:  float64(c),
				Reason: "total count overflows",
			}
		}
		weighted += values[i] * float64(c)
		total += c
	}

	if total == 0 {
		return Average{}, nil
	}
	return Average{Value: weighted / float64(total), Available: true}, nil
}

// BuildComparison zips the grid and two curves into rows.
func BuildComparison(grid PriceGrid, popCurve, saleCurve DensityCurve) (ComparisonTable, error) {
	if len(grid) != len(popCurve) || len(grid) != len(saleCurve) {
		return nil, &DimensionMismatchError{
			Operation: "comparison",
			Lengths:   []int{len(grid), len(popCurve), len(saleCurve)},
		}
	}

	table := make(ComparisonTable, len(grid))
	for i, p := range grid {
		table[i] = ComparisonRow{Price: p, Population: popCurve[i], ForSale: saleCurve[i]}
	}
	return table, nil
}

// Integrate returns the trapezoidal area under curve over grid.
func Integrate(grid PriceGrid, curve DensityCurve) (float64, error) {
	if len(grid) != len(curve) {
		return 0, &DimensionMismatchError{Operation: "integrate", Lengths: []int{len(grid), len(curve)}}
	}

	var area float64
	for i := 1; i < len(grid); i++ {
		area += (grid[i] - grid[i-1]) * (curve[i] + curve[i-1]) / 2
	}
	return area, nil
}
