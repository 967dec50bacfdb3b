package middleware

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"memoir-backend/pkg/common"
)

// Project ids are decimal-string timestamps, so the path segment must be
// all digits. Anything else is rejected before storage is touched.
var projectIDPattern = regexp.MustCompile(`^\d+$`)

// RequireProjectID rejects requests whose projectID path parameter is not
// a valid id with a 400.
func RequireProjectID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !projectIDPattern.MatchString(chi.URLParam(r, "projectID")) {
			common.RespondError(w, http.StatusBadRequest, "Invalid project ID")
			return
		}
		next.ServeHTTP(w, r)
	})
}
