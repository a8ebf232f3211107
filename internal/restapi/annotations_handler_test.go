package restapi

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricesim.demo.org/internal/annotations"
)

func editedRows() map[string][]annotations.Annotation {
	rows := annotations.Seed()
	rows[1].Sentiment = annotations.Negative
	rows[2].Sentiment = annotations.Positive
	rows[3].Ranking = 10
	return map[string][]annotations.Annotation{"rows": rows}
}

func TestAnnotationsHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/annotations.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := entryOf(t, model)
	rows := entry["rows"].([]interface{})
	require.Len(t, rows, 4)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "John Rose", first["author"])
	assert.Equal(t, string(annotations.Positive), first["sentiment"])

	assert.Equal(t, []interface{}{"", string(annotations.Positive), string(annotations.Neutral), string(annotations.Negative)},
		entry["sentiments"])
	assert.Equal(t, []interface{}{"tweet", "author"}, entry["readOnlyColumns"])
}

func TestAnnotationsExportHandler(t *testing.T) {
	api := createTestApi(t)

	t.Run("exports edited rows", func(t *testing.T) {
		resp, raw := postToEndpoint(t, api, "/api/annotations/export.csv?key=TEST", editedRows())
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="annotated.csv"`, resp.Header.Get("Content-Disposition"))

		records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 5)
		assert.Equal(t, []string{"", "tweet", "author", "sentiment", "ranking"}, records[0])
		assert.Equal(t, "1", records[2][0])
		assert.Equal(t, string(annotations.Negative), records[2][3])
		assert.Equal(t, "10", records[4][4])
	})

	t.Run("read-only column edited", func(t *testing.T) {
		body := editedRows()
		body["rows"][0].Tweet = "something else"

		resp, raw := postToEndpoint(t, api, "/api/annotations/export.csv?key=TEST", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{"column is read-only"}, decodeFieldErrors(t, raw)["rows[0].tweet"])
	})

	t.Run("row added", func(t *testing.T) {
		body := editedRows()
		body["rows"] = append(body["rows"], annotations.Annotation{Tweet: "new", Author: "me"})

		resp, raw := postToEndpoint(t, api, "/api/annotations/export.csv?key=TEST", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeFieldErrors(t, raw), "rows")
	})

	t.Run("unknown sentiment", func(t *testing.T) {
		body := editedRows()
		body["rows"][2].Sentiment = "meh"

		resp, raw := postToEndpoint(t, api, "/api/annotations/export.csv?key=TEST", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeFieldErrors(t, raw), "rows[2].sentiment")
	})
}

func TestAnnotationsSummaryHandler(t *testing.T) {
	api := createTestApi(t)

	resp, raw := postToEndpoint(t, api, "/api/annotations/summary.json?key=TEST", editedRows())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decodeModel(t, raw).Data.(map[string]interface{})["list"].([]interface{})
	counts := make(map[string]float64, len(list))
	for _, item := range list {
		row := item.(map[string]interface{})
		counts[row["sentiment"].(string)] = row["count"].(float64)
	}

	assert.Equal(t, map[string]float64{
		string(annotations.Positive): 2,
		"":                           1,
		string(annotations.Neutral):  0,
		string(annotations.Negative): 1,
	}, counts)
}
