package restapi

import (
	"bytes"
	"net/http"
	"strings"

	"pricesim.demo.org/internal/charts"
	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/utils"
)

// chartHandler renders population against for-sale density for one category,
// or every population curve when the category is "all".
func (api *RestAPI) chartHandler(w http.ResponseWriter, r *http.Request) {
	id, format := utils.ExtractIDAndFormat(r, "category")
	if format != "" && format != "png" {
		api.notFoundResponse(w, r)
		return
	}

	var category distribution.Category
	overview := strings.EqualFold(id, "all")
	if !overview {
		var ok bool
		if category, _, ok = api.categoryFromParams(w, r); !ok {
			return
		}
	}

	query := r.URL.Query()
	width, fieldErrors := utils.ParseIntParam(query, "width", 0, nil)
	height, fieldErrors := utils.ParseIntParam(query, "height", 0, fieldErrors)
	if err := utils.ValidateChartSize(width); err != nil {
		fieldErrors["width"] = append(fieldErrors["width"], err.Error())
	}
	if err := utils.ValidateChartSize(height); err != nil {
		fieldErrors["height"] = append(fieldErrors["height"], err.Error())
	}
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

	opts := charts.Options{Width: width, Height: height}
	var series []charts.Series
	if overview {
		opts.Title = "Population price distributions"
		for _, c := range distribution.Categories() {
			series = append(series, charts.Series{Name: string(c), Grid: api.Grid, Curve: result.Categories[c].PopulationCurve})
		}
	} else {
		cat := result.Categories[category]
		opts.Title = string(category) + " homes: population vs for sale"
		series = []charts.Series{
			{Name: "Population", Grid: api.Grid, Curve: cat.PopulationCurve},
			{Name: "For sale", Grid: api.Grid, Curve: cat.ForSaleCurve},
		}
	}

	var buf bytes.Buffer
	err := charts.RenderDensityChart(&buf, opts, series...)
	api.Metrics.ObserveComputation("chart", err)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendAttachment(w, r, "image/png", "", buf.Bytes())
}
