package restapi

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricesim.demo.org/internal/app"
	"pricesim.demo.org/internal/appconf"
	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/logging"
	"pricesim.demo.org/internal/models"
)

// createTestApi creates a RestAPI that accepts the "TEST" key and discards its logs.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelInfo)
	application := app.New(appconf.Config{
		Env:     appconf.EnvFlagToEnvironment("test"),
		ApiKeys: []string{"TEST"},
	}, logger)

	api := NewRestAPI(application)
	t.Cleanup(func() { logging.SafeCloseWithLogging(api, logger, "rest_api") })
	return api
}

// serveAndRetrieveEndpoint sets up a test server, makes a GET request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	server := httptest.NewServer(api.NewRouter())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// postToEndpoint sends body as JSON and returns the response with its raw body.
func postToEndpoint(t *testing.T, api *RestAPI, endpoint string, body any) (*http.Response, []byte) {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	server := httptest.NewServer(api.NewRouter())
	defer server.Close()

	resp, err := http.Post(server.URL+endpoint, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body, slog.Default(), "http_response_body")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeModel(t *testing.T, raw []byte) models.ResponseModel {
	t.Helper()
	var model models.ResponseModel
	require.NoError(t, json.Unmarshal(raw, &model))
	return model
}

func decodeFieldErrors(t *testing.T, raw []byte) map[string][]string {
	t.Helper()
	var body struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.FieldErrors
}

func defaultScenarioBody() models.ScenarioModel {
	return models.NewScenarioModel(distribution.DefaultScenario())
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)
	return entry
}

func TestCompressionMiddleware(t *testing.T) {
	largeResponse := strings.Repeat(`{"test": "data"}`, 1000)
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(largeResponse))
	})

	t.Run("compresses response when gzip accepted", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		CompressionMiddleware(testHandler).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))

		reader, err := gzip.NewReader(bytes.NewReader(recorder.Body.Bytes()))
		require.NoError(t, err)
		defer func() { _ = reader.Close() }()

		decompressed, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, largeResponse, string(decompressed))
		assert.Less(t, recorder.Body.Len(), len(largeResponse))
	})

	t.Run("does not compress when gzip not accepted", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		recorder := httptest.NewRecorder()

		CompressionMiddleware(testHandler).ServeHTTP(recorder, req)

		assert.Empty(t, recorder.Header().Get("Content-Encoding"))
		assert.Equal(t, largeResponse, recorder.Body.String())
	})

	t.Run("leaves PNG charts alone", func(t *testing.T) {
		pngHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(bytes.Repeat([]byte{0}, 4096))
		})
		req := httptest.NewRequest("POST", "/api/simulator/chart/all.png", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		CompressionMiddleware(pngHandler).ServeHTTP(recorder, req)
		assert.Empty(t, recorder.Header().Get("Content-Encoding"))
		assert.Equal(t, 4096, recorder.Body.Len())
	})
}

func TestSecurityHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("sets headers and calls next", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		securityHeaders(next).ServeHTTP(recorder, httptest.NewRequest("GET", "/api/simulator/defaults.json", nil))

		assert.Equal(t, http.StatusTeapot, recorder.Code)
		assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", recorder.Header().Get("X-Frame-Options"))
		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight requests", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/simulator/simulate.json", nil)
		req.Header.Set("Origin", "http://localhost:8501")
		recorder := httptest.NewRecorder()

		securityHeaders(next).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}

func TestNotFoundRoute(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/simulator/unknown.json?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
	assert.Equal(t, "resource not found", model.Text)
}

func TestWithMiddlewareChain(t *testing.T) {
	api := createTestApi(t)
	server := httptest.NewServer(api.WithMiddleware(api.NewRouter()))
	defer server.Close()

	req, err := http.NewRequest("GET", server.URL+"/api/simulator/grid.json?key=TEST&prices=true", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")

	// Use a transport that does not transparently decompress.
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

// getFromEndpoint makes a GET request and returns the response with its raw body.
func getFromEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()
	server := httptest.NewServer(api.NewRouter())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body, slog.Default(), "http_response_body")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}
