package restapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"pricesim.demo.org/internal/annotations"
	"pricesim.demo.org/internal/models"
)

type annotationsBody struct {
	Rows []annotations.Annotation `json:"rows"`
}

func (api *RestAPI) annotationsHandler(w http.ResponseWriter, r *http.Request) {
	entry := struct {
		Rows            []annotations.Annotation `json:"rows"`
		Sentiments      []annotations.Sentiment  `json:"sentiments"`
		ReadOnlyColumns []string                 `json:"readOnlyColumns"`
	}{
		Rows:            annotations.Seed(),
		Sentiments:      annotations.SentimentOptions(),
		ReadOnlyColumns: []string{"tweet", "author"},
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}

// decodeAnnotations reads an edited table and checks it against the seed.
func (api *RestAPI) decodeAnnotations(w http.ResponseWriter, r *http.Request) ([]annotations.Annotation, bool) {
	var body annotationsBody
	if fieldErrors := readJSON(w, r, &body); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return nil, false
	}

	rows, err := annotations.Apply(annotations.Seed(), body.Rows)
	if err != nil {
		var editErr *annotations.EditError
		if errors.As(err, &editErr) {
			field := "rows"
			if editErr.Row >= 0 {
				field = fmt.Sprintf("rows[%d].%s", editErr.Row, editErr.Column)
			}
			api.validationErrorResponse(w, r, map[string][]string{field: {editErr.Reason}})
			return nil, false
		}
		api.serverErrorResponse(w, r, err)
		return nil, false
	}
	return rows, true
}

func (api *RestAPI) annotationsExportHandler(w http.ResponseWriter, r *http.Request) {
	rows, ok := api.decodeAnnotations(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := annotations.WriteCSV(&buf, rows); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendAttachment(w, r, "text/csv; charset=utf-8", "annotated.csv", buf.Bytes())
}

func (api *RestAPI) annotationsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	rows, ok := api.decodeAnnotations(w, r)
	if !ok {
		return
	}
	api.sendResponse(w, r, models.NewListResponse(annotations.Summarize(rows)))
}
