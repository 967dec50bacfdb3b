// Package common holds the HTTP response helpers shared by all handlers.
//
// The wire contract is deliberately flat: success responses are the raw
// entity or array, errors are {"error": "..."} with the status carried in
// the HTTP code. The client renders error bodies inline, so there is no
// envelope.
package common

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "memoir-backend/pkg/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// OKBody acknowledges a delete or other side-effect-only operation.
type OKBody struct {
	OK bool `json:"ok"`
}

// RespondJSON sends v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondError sends a flat {"error": message} body.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorBody{Error: message})
}

// RespondOK sends the {"ok": true} acknowledgement.
func RespondOK(w http.ResponseWriter) {
	RespondJSON(w, http.StatusOK, OKBody{OK: true})
}

// RespondAppError maps an application error to its HTTP status. Internal
// errors are masked with a generic message so filesystem paths never leak
// into responses.
func RespondAppError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if appErr := apperrors.GetAppError(err); appErr != nil && status < http.StatusInternalServerError {
		RespondError(w, status, appErr.Message)
		return
	}
	RespondError(w, status, "internal server error")
}

// RespondAttachment writes body as a file download.
func RespondAttachment(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// ParseJSONBody parses a JSON request body with a size limit.
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
