package restapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/logging"
	"pricesim.demo.org/internal/models"
	"pricesim.demo.org/internal/utils"
)

// decodeScenario reads a ScenarioModel body and checks value bounds. It writes
// a 400 response and returns false when the body is unusable.
func (api *RestAPI) decodeScenario(w http.ResponseWriter, r *http.Request) (distribution.Scenario, bool) {
	var body models.ScenarioModel
	if fieldErrors := readJSON(w, r, &body); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return distribution.Scenario{}, false
	}

	fieldErrors := make(map[string][]string)
	for i, p := range body.Population {
		fieldErrors = utils.ValidateFields(map[string]float64{
			fmt.Sprintf("population[%d].mean", i):   p.Mean,
			fmt.Sprintf("population[%d].stdDev", i): p.StdDev,
		}, utils.ValidatePrice, fieldErrors)
	}
	for i, m := range body.Multipliers {
		fieldErrors = utils.ValidateFields(map[string]float64{
			fmt.Sprintf("multipliers[%d].meanMultiplier", i): m.MeanMultiplier,
			fmt.Sprintf("multipliers[%d].stdMultiplier", i):  m.StdMultiplier,
		}, utils.ValidateMultiplier, fieldErrors)
	}

	for i, c := range body.Counts {
		for field, n := range map[string]int{
			fmt.Sprintf("counts[%d].populationCount", i): c.PopulationCount,
			fmt.Sprintf("counts[%d].forSaleCount", i):    c.ForSaleCount,
		} {
			if err := utils.ValidateCount(n); err != nil {
				fieldErrors[field] = append(fieldErrors[field], err.Error())
			}
		}
	}

	scenario, structural := body.ToScenario()
	for field, msgs := range structural {
		fieldErrors[field] = append(fieldErrors[field], msgs...)
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return distribution.Scenario{}, false
	}
	return scenario, true
}

// simulate runs the engine over the shared grid, recording metrics and a log line.
func (api *RestAPI) simulate(w http.ResponseWriter, r *http.Request, scenario distribution.Scenario) (distribution.Result, bool) {
	start := time.Now()
	result, err := distribution.Simulate(api.Grid, scenario)
	api.Metrics.ObserveComputation("simulate", err)
	if err != nil {
		api.engineErrorResponse(w, r, err)
		return distribution.Result{}, false
	}

	logging.LogOperation(logging.FromContext(r.Context()), "scenario_simulated",
		slog.Int("grid_points", len(api.Grid)),
		slog.String("population_average", result.PopulationAverage.String()),
		slog.String("for_sale_average", result.ForSaleAverage.String()),
		slog.Duration("duration", time.Since(start)))
	return result, true
}

func (api *RestAPI) simulateHandler(w http.ResponseWriter, r *http.Request) {
	withCurves, fieldErrors := utils.ParseBoolParam(r.URL.Query(), "curves", true, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	scenario, ok := api.decodeScenario(w, r)
	if !ok {
		return
	}
	result, ok := api.simulate(w, r, scenario)
	if !ok {
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewSimulationModel(api.Grid, result, withCurves)))
}
