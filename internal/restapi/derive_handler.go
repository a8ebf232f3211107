package restapi

import (
	"net/http"

	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/models"
	"pricesim.demo.org/internal/utils"
)

// categoryFromParams resolves the :category route parameter or writes a 404.
func (api *RestAPI) categoryFromParams(w http.ResponseWriter, r *http.Request) (distribution.Category, string, bool) {
	id, format := utils.ExtractIDAndFormat(r, "category")
	c, err := distribution.ParseCategory(id)
	if err != nil {
		api.notFoundResponse(w, r)
		return "", "", false
	}
	return c, format, true
}

// populationParamsFromQuery reads mean and stdDev, defaulting to the category's starting values.
func populationParamsFromQuery(r *http.Request, c distribution.Category, fieldErrors map[string][]string) (distribution.CategoryParams, map[string][]string) {
	defaults := distribution.DefaultScenario().Population[c]
	query := r.URL.Query()

	mean, fieldErrors := utils.ParseFloatParam(query, "mean", defaults.Mean, fieldErrors)
	stdDev, fieldErrors := utils.ParseFloatParam(query, "stdDev", defaults.StdDev, fieldErrors)
	if _, bad := fieldErrors["mean"]; !bad {
		fieldErrors = utils.ValidateFields(map[string]float64{"mean": mean}, utils.ValidatePrice, fieldErrors)
	}
	if _, bad := fieldErrors["stdDev"]; !bad {
		fieldErrors = utils.ValidateFields(map[string]float64{"stdDev": stdDev}, utils.ValidatePrice, fieldErrors)
	}

	return distribution.CategoryParams{Name: c, Mean: mean, StdDev: stdDev}, fieldErrors
}

func (api *RestAPI) deriveHandler(w http.ResponseWriter, r *http.Request) {
	c, _, ok := api.categoryFromParams(w, r)
	if !ok {
		return
	}

	pop, fieldErrors := populationParamsFromQuery(r, c, nil)

	query := r.URL.Query()
	meanMult, fieldErrors := utils.ParseFloatParam(query, "meanMultiplier", 1, fieldErrors)
	stdMult, fieldErrors := utils.ParseFloatParam(query, "stdMultiplier", 1, fieldErrors)
	if _, bad := fieldErrors["meanMultiplier"]; !bad {
		fieldErrors = utils.ValidateFields(map[string]float64{"meanMultiplier": meanMult}, utils.ValidateMultiplier, fieldErrors)
	}
	if _, bad := fieldErrors["stdMultiplier"]; !bad {
		fieldErrors = utils.ValidateFields(map[string]float64{"stdMultiplier": stdMult}, utils.ValidateMultiplier, fieldErrors)
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	sale, err := distribution.DeriveForSale(pop, distribution.Multiplier{MeanMultiplier: meanMult, StdMultiplier: stdMult})
	api.Metrics.ObserveComputation("derive", err)
	if err != nil {
		api.engineErrorResponse(w, r, err)
		return
	}

	entry := struct {
		Population models.CategoryParamsModel `json:"population"`
		ForSale    models.CategoryParamsModel `json:"forSale"`
	}{
		Population: models.NewCategoryParamsModel(pop),
		ForSale:    models.NewCategoryParamsModel(sale),
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
