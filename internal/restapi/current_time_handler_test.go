package restapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTimeHandler(t *testing.T) {
	before := time.Now().UnixMilli()
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/current-time.json?key=TEST")
	after := time.Now().UnixMilli()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 200, model.Code)
	assert.Equal(t, 2, model.Version)

	entry := entryOf(t, model)
	ts := int64(entry["time"].(float64))
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)
	assert.NotEmpty(t, entry["readableTime"])
	assert.NotEmpty(t, entry["uptime"])
}

func TestCurrentTimeHandlerRequiresValidApiKey(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/current-time.json?key=invalid")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)
}
