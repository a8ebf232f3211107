package utils

import (
	"net/http"
	"path"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDAndFormat splits a route parameter like "starter.csv" into ("starter", "csv").
func ExtractIDAndFormat(r *http.Request, paramName string) (string, string) {
	params := httprouter.ParamsFromContext(r.Context())
	raw := params.ByName(paramName)
	ext := path.Ext(raw)
	return strings.TrimSuffix(raw, ext), strings.TrimPrefix(ext, ".")
}
