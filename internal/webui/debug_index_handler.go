package webui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"pricesim.demo.org/internal/annotations"
	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/logging"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var dataTypes = []string{"scenario", "grid", "simulation", "annotations", "config", "metrics"}

type debugData struct {
	Title string
	Pre   string
	Links []string
}

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true, DisableCapacities: true}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	var buf bytes.Buffer
	err := debugTemplate.Execute(&buf, debugData{
		Title: title,
		Pre:   dumper.Sdump(data),
		Links: dataTypes,
	})
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render debug page", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "scenario":
		data = distribution.DefaultScenario()
		title = "Simulator - Default Scenario"
	case "grid":
		lo, hi := webUI.Grid.Bounds()
		data = map[string]interface{}{"min": lo, "max": hi, "points": len(webUI.Grid)}
		title = "Simulator - Price Grid"
	case "simulation":
		result, err := distribution.Simulate(webUI.Grid, distribution.DefaultScenario())
		if err != nil {
			data = err
		} else {
			summary := make(map[distribution.Category][2]distribution.CategoryParams, len(result.Categories))
			for c, cat := range result.Categories {
				summary[c] = [2]distribution.CategoryParams{cat.Population, cat.ForSale}
			}
			data = map[string]interface{}{
				"categories":        summary,
				"populationAverage": result.PopulationAverage.String(),
				"forSaleAverage":    result.ForSaleAverage.String(),
			}
		}
		title = "Simulator - Default Simulation"
	case "annotations":
		data = annotations.Seed()
		title = "Annotations - Seed"
	case "config":
		data = map[string]interface{}{
			"port":      webUI.Config.Port,
			"env":       webUI.Config.Env.String(),
			"rateLimit": webUI.Config.RateLimit,
			"apiKeys":   len(webUI.Config.ApiKeys),
		}
		title = "Application Config"
	case "metrics":
		families, err := webUI.Metrics.Registry().Gather()
		if err != nil {
			data = err
		} else {
			series := make(map[string]int, len(families))
			for _, mf := range families {
				series[mf.GetName()] = len(mf.GetMetric())
			}
			data = series
		}
		title = "Application Metrics"
	default:
		data = map[string]string{
			"error": "Please use one of the following: scenario, grid, simulation, annotations, config, metrics.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, r, title, data)
}
