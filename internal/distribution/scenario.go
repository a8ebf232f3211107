package distribution

import "fmt"

// CategoryCount is one editable row of the count table.
type CategoryCount struct {
	Category        Category
	PopulationCount int
	ForSaleCount    int
}

// CountTable has exactly one row per category; rows cannot be added or removed.
type CountTable [CategoryCountRows]CategoryCount

// Row returns the row for c.
func (t CountTable) Row(c Category) (CategoryCount, bool) {
	for _, row := range t {
		if row.Category == c {
			return row, true
		}
	}
	return CategoryCount{}, false
}

// Validate checks that every category appears exactly once with non-negative counts.
func (t CountTable) Validate() error {
	seen := make(map[Category]bool, len(t))
	for i, row := range t {
		if !row.Category.Valid() {
			return &InvalidParameterError{Field: fmt.Sprintf("counts[%d].category", i), Reason: fmt.Sprintf("unknown category %q", row.Category)}
		}
		if seen[row.Category] {
			return &InvalidParameterError{Field: fmt.Sprintf("counts[%d].category", i), Reason: fmt.Sprintf("duplicate category %q", row.Category)}
		}
		seen[row.Category] = true
		if row.PopulationCount < 0 {
			return &InvalidParameterError{Field: fmt.Sprintf("counts[%d].populationCount", i), Value: float64(row.PopulationCount), Reason: "must not be negative"}
		}
		if row.ForSaleCount < 0 {
			return &InvalidParameterError{Field: fmt.Sprintf("counts[%d].forSaleCount", i), Value: float64(row.ForSaleCount), Reason: "must not be negative"}
		}
	}
	return nil
}

// Scenario is the full set of inputs the price simulator recomputes on each change.
type Scenario struct {
	Population  map[Category]CategoryParams
	Multipliers map[Category]Multiplier
	Counts      CountTable
}

// CategoryResult holds the derived values for a single category.
type CategoryResult struct {
	Population      CategoryParams
	ForSale         CategoryParams
	PopulationCurve DensityCurve
	ForSaleCurve    DensityCurve
}

// Result is the output of Simulate.
type Result struct {
	Categories        map[Category]CategoryResult
	PopulationAverage Average
	ForSaleAverage    Average
}

// DefaultScenario returns the simulator's starting values.
func DefaultScenario() Scenario {
	return Scenario{
		Population: map[Category]CategoryParams{
			Starter:      {Name: Starter, Mean: 200_000, StdDev: 50_000},
			Intermediate: {Name: Intermediate, Mean: 450_000, StdDev: 100_000},
			Luxury:       {Name: Luxury, Mean: 1_500_000, StdDev: 400_000},
		},
		Multipliers: map[Category]Multiplier{
			Starter:      IdentityMultiplier,
			Intermediate: IdentityMultiplier,
			Luxury:       IdentityMultiplier,
		},
		Counts: CountTable{
			{Category: Starter, PopulationCount: 1000, ForSaleCount: 50},
			{Category: Intermediate, PopulationCount: 600, ForSaleCount: 30},
			{Category: Luxury, PopulationCount: 150, ForSaleCount: 10},
		},
	}
}

// Validate checks that every category has parameters, a multiplier and a count row.
func (s Scenario) Validate() error {
	for _, c := range Categories() {
		pop, ok := s.Population[c]
		if !ok {
			return &InvalidParameterError{Field: "population." + string(c), Reason: "missing"}
		}
		if err := mustBePositive("population."+string(c)+".mean", pop.Mean); err != nil {
			return err
		}
		if err := mustBePositive("population."+string(c)+".stdDev", pop.StdDev); err != nil {
			return err
		}
		mult, ok := s.Multipliers[c]
		if !ok {
			return &InvalidParameterError{Field: "multipliers." + string(c), Reason: "missing"}
		}
		if err := mustBePositive("multipliers."+string(c)+".meanMultiplier", mult.MeanMultiplier); err != nil {
			return err
		}
		if err := mustBePositive("multipliers."+string(c)+".stdMultiplier", mult.StdMultiplier); err != nil {
			return err
		}
	}
	return s.Counts.Validate()
}

// Simulate derives the for-sale distributions, evaluates every curve over grid
// and computes the count-weighted average prices.
func Simulate(grid PriceGrid, s Scenario) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	categories := Categories()
	result := Result{Categories: make(map[Category]CategoryResult, len(categories))}

	popMeans := make([]float64, 0, len(categories))
	saleMeans := make([]float64, 0, len(categories))
	popCounts := make([]int, 0, len(categories))
	saleCounts := make([]int, 0, len(categories))

	for _, c := range categories {
		pop := s.Population[c]
		pop.Name = c

		sale, err := DeriveForSale(pop, s.Multipliers[c])
		if err != nil {
			return Result{}, fmt.Errorf("derive %s: %w", c, err)
		}
		popCurve, err := NormalDensity(grid, pop)
		if err != nil {
			return Result{}, fmt.Errorf("population density %s: %w", c, err)
		}
		saleCurve, err := NormalDensity(grid, sale)
		if err != nil {
			return Result{}, fmt.Errorf("for-sale density %s: %w", c, err)
		}

		result.Categories[c] = CategoryResult{
			Population:      pop,
			ForSale:         sale,
			PopulationCurve: popCurve,
			ForSaleCurve:    saleCurve,
		}

		row, _ := s.Counts.Row(c)
		popMeans = append(popMeans, pop.Mean)
		saleMeans = append(saleMeans, sale.Mean)
		popCounts = append(popCounts, row.PopulationCount)
		saleCounts = append(saleCounts, row.ForSaleCount)
	}

	var err error
	if result.PopulationAverage, err = WeightedAverage(popMeans, popCounts); err != nil {
		return Result{}, fmt.Errorf("population average: %w", err)
	}
	if result.ForSaleAverage, err = WeightedAverage(saleMeans, saleCounts); err != nil {
		return Result{}, fmt.Errorf("for-sale average: %w", err)
	}
	return result, nil
}
