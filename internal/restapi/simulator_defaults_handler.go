package restapi

import (
	"net/http"

	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/models"
	"pricesim.demo.org/internal/utils"
)

func (api *RestAPI) defaultsHandler(w http.ResponseWriter, r *http.Request) {
	categories := make([]string, 0, distribution.CategoryCountRows)
	for _, c := range distribution.Categories() {
		categories = append(categories, string(c))
	}

	entry := struct {
		Categories []string             `json:"categories"`
		Scenario   models.ScenarioModel `json:"scenario"`
		Grid       models.GridModel     `json:"grid"`
	}{
		Categories: categories,
		Scenario:   models.NewScenarioModel(distribution.DefaultScenario()),
		Grid:       models.NewGridModel(api.Grid, false),
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry))
}

func (api *RestAPI) gridHandler(w http.ResponseWriter, r *http.Request) {
	withPrices, fieldErrors := utils.ParseBoolParam(r.URL.Query(), "prices", false, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewGridModel(api.Grid, withPrices)))
}
