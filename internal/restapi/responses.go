package restapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pricesim.demo.org/internal/logging"
	"pricesim.demo.org/internal/models"
)

const maxBodyBytes = 1 << 20

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(response); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to write response", err)
	}
}

// sendAttachment writes body as a downloadable file.
func (api *RestAPI) sendAttachment(w http.ResponseWriter, r *http.Request, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	if _, err := w.Write(body); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to write attachment", err)
	}
}

// readJSON decodes a single JSON value from the request body into dst.
// Unknown fields are rejected. Failures come back as field errors keyed "body".
func readJSON(w http.ResponseWriter, r *http.Request, dst any) map[string][]string {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError

		msg := "body contains invalid JSON"
		switch {
		case errors.Is(err, io.EOF):
			msg = "body must not be empty"
		case errors.As(err, &syntaxErr):
			msg = fmt.Sprintf("body contains badly-formed JSON (at character %d)", syntaxErr.Offset)
		case errors.As(err, &typeErr):
			msg = fmt.Sprintf("body contains an incorrect JSON type for field %q", typeErr.Field)
		case errors.As(err, &maxErr):
			msg = fmt.Sprintf("body must not be larger than %d bytes", maxErr.Limit)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			msg = "body contains unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
		}
		return map[string][]string{"body": {msg}}
	}

	if dec.More() {
		return map[string][]string{"body": {"body must only contain a single JSON value"}}
	}
	return nil
}
