package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"pricesim.demo.org/internal/distribution"
	"pricesim.demo.org/internal/logging"
	"pricesim.demo.org/internal/models"
)

type errorResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *RestAPI) writeError(w http.ResponseWriter, code int, text string) {
	response := errorResponse{
		Code:        code,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     1,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.Logger, "failed to encode error response", err)
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.writeError(w, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	api.writeError(w, http.StatusNotFound, "resource not found")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "internal server error", err)
	api.writeError(w, http.StatusInternalServerError, "internal server error")
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.Logger, "failed to encode validation error response", err)
	}
}

// engineErrorResponse maps engine validation failures to 400 responses and anything else to 500.
func (api *RestAPI) engineErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *distribution.InvalidParameterError
	if errors.As(err, &paramErr) {
		api.validationErrorResponse(w, r, map[string][]string{paramErr.Field: {paramErr.Reason}})
		return
	}

	var dimErr *distribution.DimensionMismatchError
	if errors.As(err, &dimErr) {
		api.validationErrorResponse(w, r, map[string][]string{"data": {dimErr.Error()}})
		return
	}

	api.serverErrorResponse(w, r, err)
}
