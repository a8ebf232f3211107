package models

import (
	"fmt"

	"pricesim.demo.org/internal/distribution"
)

// CategoryParamsModel is the wire form of distribution.CategoryParams.
type CategoryParamsModel struct {
	Category string  `json:"category"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stdDev"`
}

// MultiplierModel is the wire form of a per-category distribution.Multiplier.
type MultiplierModel struct {
	Category       string  `json:"category"`
	MeanMultiplier float64 `json:"meanMultiplier"`
	StdMultiplier  float64 `json:"stdMultiplier"`
}

// CategoryCountModel is one row of the editable count table.
type CategoryCountModel struct {
	Category        string `json:"category"`
	PopulationCount int    `json:"populationCount"`
	ForSaleCount    int    `json:"forSaleCount"`
}

// ScenarioModel is the request body accepted by the simulator endpoints.
type ScenarioModel struct {
	Population  []CategoryParamsModel `json:"population"`
	Multipliers []MultiplierModel     `json:"multipliers"`
	Counts      []CategoryCountModel  `json:"counts"`
}

// AverageModel reports a weighted average; Value is null when not available.
type AverageModel struct {
	Value     *float64 `json:"value"`
	Available bool     `json:"available"`
	Text      string   `json:"text"`
}

// GridModel describes the price grid; Prices is only filled when requested.
type GridModel struct {
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Points int       `json:"points"`
	Prices []float64 `json:"prices,omitempty"`
}

type CategoryResultModel struct {
	Category          string              `json:"category"`
	Population        CategoryParamsModel `json:"population"`
	ForSale           CategoryParamsModel `json:"forSale"`
	PopulationDensity []float64           `json:"populationDensity,omitempty"`
	ForSaleDensity    []float64           `json:"forSaleDensity,omitempty"`
}

type SimulationModel struct {
	Grid              GridModel             `json:"grid"`
	Categories        []CategoryResultModel `json:"categories"`
	PopulationAverage AverageModel          `json:"populationAverage"`
	ForSaleAverage    AverageModel          `json:"forSaleAverage"`
}

type DensityModel struct {
	Params  CategoryParamsModel `json:"params"`
	Area    float64             `json:"area"`
	Grid    GridModel           `json:"grid"`
	Density []float64           `json:"density"`
}

type ComparisonRowModel struct {
	Price      float64 `json:"price"`
	Population float64 `json:"population"`
	ForSale    float64 `json:"forSale"`
}

func NewCategoryParamsModel(p distribution.CategoryParams) CategoryParamsModel {
	return CategoryParamsModel{Category: string(p.Name), Mean: p.Mean, StdDev: p.StdDev}
}

func NewAverageModel(a distribution.Average) AverageModel {
	model := AverageModel{Available: a.Available, Text: a.String()}
	if a.Available {
		v := a.Value
		model.Value = &v
	}
	return model
}

// NewGridModel summarizes grid, including every price when withPrices is set.
func NewGridModel(grid distribution.PriceGrid, withPrices bool) GridModel {
	lo, hi := grid.Bounds()
	model := GridModel{Min: lo, Max: hi, Points: len(grid)}
	if withPrices {
		model.Prices = grid
	}
	return model
}

// NewSimulationModel lists the categories in display order. Curves are omitted unless withCurves is set.
func NewSimulationModel(grid distribution.PriceGrid, result distribution.Result, withCurves bool) SimulationModel {
	model := SimulationModel{
		Grid:              NewGridModel(grid, withCurves),
		Categories:        make([]CategoryResultModel, 0, len(result.Categories)),
		PopulationAverage: NewAverageModel(result.PopulationAverage),
		ForSaleAverage:    NewAverageModel(result.ForSaleAverage),
	}

	for _, c := range distribution.Categories() {
		cat, ok := result.Categories[c]
		if !ok {
			continue
		}
		row := CategoryResultModel{
			Category:   string(c),
			Population: NewCategoryParamsModel(cat.Population),
			ForSale:    NewCategoryParamsModel(cat.ForSale),
		}
		if withCurves {
			row.PopulationDensity = cat.PopulationCurve
			row.ForSaleDensity = cat.ForSaleCurve
		}
		model.Categories = append(model.Categories, row)
	}
	return model
}

func NewComparisonModel(table distribution.ComparisonTable) []ComparisonRowModel {
	rows := make([]ComparisonRowModel, len(table))
	for i, r := range table {
		rows[i] = ComparisonRowModel{Price: r.Price, Population: r.Population, ForSale: r.ForSale}
	}
	return rows
}

// NewScenarioModel converts a scenario to its wire form, categories in display order.
func NewScenarioModel(s distribution.Scenario) ScenarioModel {
	var model ScenarioModel
	for _, c := range distribution.Categories() {
		if p, ok := s.Population[c]; ok {
			p.Name = c
			model.Population = append(model.Population, NewCategoryParamsModel(p))
		}
		if m, ok := s.Multipliers[c]; ok {
			model.Multipliers = append(model.Multipliers, MultiplierModel{
				Category:       string(c),
				MeanMultiplier: m.MeanMultiplier,
				StdMultiplier:  m.StdMultiplier,
			})
		}
	}
	for _, row := range s.Counts {
		model.Counts = append(model.Counts, CategoryCountModel{
			Category:        string(row.Category),
			PopulationCount: row.PopulationCount,
			ForSaleCount:    row.ForSaleCount,
		})
	}
	return model
}

// ToScenario converts the wire form into a distribution.Scenario. Structural
// problems (unknown or repeated categories, wrong row count) are returned as
// field errors; value ranges are left to distribution.Simulate.
func (m ScenarioModel) ToScenario() (distribution.Scenario, map[string][]string) {
	fieldErrors := make(map[string][]string)
	s := distribution.Scenario{
		Population:  make(map[distribution.Category]distribution.CategoryParams, len(m.Population)),
		Multipliers: make(map[distribution.Category]distribution.Multiplier, len(m.Multipliers)),
	}

	for i, p := range m.Population {
		field := fmt.Sprintf("population[%d].category", i)
		c, err := distribution.ParseCategory(p.Category)
		if err != nil {
			fieldErrors[field] = append(fieldErrors[field], err.Error())
			continue
		}
		if _, dup := s.Population[c]; dup {
			fieldErrors[field] = append(fieldErrors[field], fmt.Sprintf("duplicate category %q", c))
			continue
		}
		s.Population[c] = distribution.CategoryParams{Name: c, Mean: p.Mean, StdDev: p.StdDev}
	}

	for i, mult := range m.Multipliers {
		field := fmt.Sprintf("multipliers[%d].category", i)
		c, err := distribution.ParseCategory(mult.Category)
		if err != nil {
			fieldErrors[field] = append(fieldErrors[field], err.Error())
			continue
		}
		if _, dup := s.Multipliers[c]; dup {
			fieldErrors[field] = append(fieldErrors[field], fmt.Sprintf("duplicate category %q", c))
			continue
		}
		s.Multipliers[c] = distribution.Multiplier{MeanMultiplier: mult.MeanMultiplier, StdMultiplier: mult.StdMultiplier}
	}

	if len(m.Counts) != distribution.CategoryCountRows {
		fieldErrors["counts"] = append(fieldErrors["counts"],
			fmt.Sprintf("expected %d rows, got %d", distribution.CategoryCountRows, len(m.Counts)))
	} else {
		for i, row := range m.Counts {
			c, err := distribution.ParseCategory(row.Category)
			if err != nil {
				field := fmt.Sprintf("counts[%d].category", i)
				fieldErrors[field] = append(fieldErrors[field], err.Error())
				continue
			}
			s.Counts[i] = distribution.CategoryCount{
				Category:        c,
				PopulationCount: row.PopulationCount,
				ForSaleCount:    row.ForSaleCount,
			}
		}
	}

	if len(fieldErrors) > 0 {
		return distribution.Scenario{}, fieldErrors
	}
	return s, nil
}
