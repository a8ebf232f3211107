package restapi

import (
	"net/http"

	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/models"
	"pricesim.demo.org/internal/utils"
)

func (api *RestAPI) densityHandler(w http.ResponseWriter, r *http.Request) {
	c, _, ok := api.categoryFromParams(w, r)
	if !ok {
		return
	}

	params, fieldErrors := populationParamsFromQuery(r, c, nil)
	withPrices, fieldErrors := utils.ParseBoolParam(r.URL.Query(), "prices", false, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	curve, err := distribution.NormalDensity(api.Grid, params)
	api.Metrics.ObserveComputation("density", err)
	if err != nil {
		api.engineErrorResponse(w, r, err)
		return
	}

	area, err := distribution.Integrate(api.Grid, curve)
	if err != nil {
		api.engineErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.DensityModel{
		Params:  models.NewCategoryParamsModel(params),
		Area:    area,
		Grid:    models.NewGridModel(api.Grid, withPrices),
		Density: curve,
	}))
}
