package restapi

import (
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricesim.demo.org/internal/models"
)

func TestSimulateHandler(t *testing.T) {
	api := createTestApi(t)

	t.Run("default scenario", func(t *testing.T) {
		resp, raw := postToEndpoint(t, api, "/api/simulator/simulate.json?key=TEST", defaultScenarioBody())
		require.Equal(t, http.StatusOK, resp.StatusCode)

		entry := entryOf(t, decodeModel(t, raw))
		popAvg := entry["populationAverage"].(map[string]interface{})
		saleAvg := entry["forSaleAverage"].(map[string]interface{})

		assert.Equal(t, true, popAvg["available"])
		assert.InDelta(t, 695e6/1750, popAvg["value"], 1e-6)
		assert.InDelta(t, 38.5e6/90, saleAvg["value"], 1e-6)
		assert.Equal(t, "427777.78", saleAvg["text"])

		categories := entry["categories"].([]interface{})
		require.Len(t, categories, 3)
		starter := categories[0].(map[string]interface{})
		assert.Equal(t, "Starter", starter["category"])
		assert.Len(t, starter["populationDensity"], 1500)
		assert.Len(t, starter["forSaleDensity"], 1500)

		grid := entry["grid"].(map[string]interface{})
		assert.Len(t, grid["prices"], 1500)
	})

	t.Run("curves can be omitted", func(t *testing.T) {
		resp, raw := postToEndpoint(t, api, "/api/simulator/simulate.json?key=TEST&curves=false", defaultScenarioBody())
		require.Equal(t, http.StatusOK, resp.StatusCode)

		entry := entryOf(t, decodeModel(t, raw))
		starter := entry["categories"].([]interface{})[0].(map[string]interface{})
		assert.NotContains(t, starter, "populationDensity")
		assert.NotContains(t, entry["grid"], "prices")
	})

	t.Run("multipliers shift for-sale average", func(t *testing.T) {
		body := defaultScenarioBody()
		body.Multipliers[2] = models.MultiplierModel{Category: "Luxury", MeanMultiplier: 2, StdMultiplier: 0.5}

		resp, raw := postToEndpoint(t, api, "/api/simulator/simulate.json?key=TEST&curves=false", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		entry := entryOf(t, decodeModel(t, raw))
		saleAvg := entry["forSaleAverage"].(map[string]interface{})
		assert.InDelta(t, 53.5e6/90, saleAvg["value"], 1e-6)

		luxury := entry["categories"].([]interface{})[2].(map[string]interface{})
		forSale := luxury["forSale"].(map[string]interface{})
		assert.Equal(t, 3e6, forSale["mean"])
		assert.Equal(t, 200000.0, forSale["stdDev"])
	})

	t.Run("zero counts are not available", func(t *testing.T) {
		body := defaultScenarioBody()
		for i := range body.Counts {
			body.Counts[i].ForSaleCount = 0
		}

		resp, raw := postToEndpoint(t, api, "/api/simulator/simulate.json?key=TEST&curves=false", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		saleAvg := entryOf(t, decodeModel(t, raw))["forSaleAverage"].(map[string]interface{})
		assert.Equal(t, false, saleAvg["available"])
		assert.Nil(t, saleAvg["value"])
		assert.Equal(t, "not available", saleAvg["text"])
	})

	t.Run("requires api key", func(t *testing.T) {
		resp, _ := postToEndpoint(t, api, "/api/simulator/simulate.json", defaultScenarioBody())
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSimulateHandlerValidation(t *testing.T) {
	api := createTestApi(t)

	tests := []struct {
		name   string
		mutate func(*models.ScenarioModel)
		field  string
	}{
		{
			name:   "zero std dev",
			mutate: func(m *models.ScenarioModel) { m.Population[0].StdDev = 0 },
			field:  "population[0].stdDev",
		},
		{
			name:   "zero multiplier",
			mutate: func(m *models.ScenarioModel) { m.Multipliers[1].MeanMultiplier = 0 },
			field:  "multipliers[1].meanMultiplier",
		},
		{
			name:   "unknown category",
			mutate: func(m *models.ScenarioModel) { m.Population[0].Category = "Castle" },
			field:  "population[0].category",
		},
		{
			name:   "missing category",
			mutate: func(m *models.ScenarioModel) { m.Population = m.Population[:2] },
			field:  "population.Luxury",
		},
		{
			name:   "wrong row count",
			mutate: func(m *models.ScenarioModel) { m.Counts = m.Counts[:2] },
			field:  "counts",
		},
		{
			name:   "negative count",
			mutate: func(m *models.ScenarioModel) { m.Counts[1].PopulationCount = -5 },
			field:  "counts[1].populationCount",
		},
		{
			name: "counts large enough to overflow the total",
			mutate: func(m *models.ScenarioModel) {
				m.Counts[0].ForSaleCount = math.MaxInt
				m.Counts[1].ForSaleCount = math.MaxInt
				m.Counts[2].ForSaleCount = 2
			},
			field: "counts[0].forSaleCount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := defaultScenarioBody()
			tt.mutate(&body)

			resp, raw := postToEndpoint(t, api, "/api/simulator/simulate.json?key=TEST", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decodeFieldErrors(t, raw), tt.field)
		})
	}

	bodies := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `{"population": [`},
		{"unknown field", `{"houses": []}`},
		{"two values", `{} {}`},
		{"wrong type", `{"counts": "many"}`},
	}
	for _, tt := range bodies {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := postToEndpoint(t, api, "/api/simulator/simulate.json?key=TEST", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decodeFieldErrors(t, raw), "body")
		})
	}
}
