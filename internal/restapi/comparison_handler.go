package restapi

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/models"
)

func (api *RestAPI) comparisonHandler(w http.ResponseWriter, r *http.Request) {
	c, format, ok := api.categoryFromParams(w, r)
	if !ok {
		return
	}
	if format != "" && format != "json" && format != "csv" {
		api.notFoundResponse(w, r)
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

	cat := result.Categories[c]
	table, err := distribution.BuildComparison(api.Grid, cat.PopulationCurve, cat.ForSaleCurve)
	api.Metrics.ObserveComputation("comparison", err)
	if err != nil {
		api.engineErrorResponse(w, r, err)
		return
	}

	if format == "csv" {
		body, err := comparisonCSV(table)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		api.sendAttachment(w, r, "text/csv; charset=utf-8", strings.ToLower(string(c))+"_comparison.csv", body)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewComparisonModel(table)))
}

func comparisonCSV(table distribution.ComparisonTable) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{"price", "population", "for_sale"}); err != nil {
		return nil, err
	}
	for _, row := range table {
		record := []string{
			strconv.FormatFloat(row.Price, 'f', 2, 64),
			strconv.FormatFloat(row.Population, 'g', -1, 64),
			strconv.FormatFloat(row.ForSale, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}

	cw.Flush()
	return buf.Bytes(), cw.Error()
}
