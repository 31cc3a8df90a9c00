package middleware

import (
	"net/http"

	"canvaspad/pkg/httpx"
	"canvaspad/pkg/logger"
)

// Recovery converts handler panics into a logged generic 500 so internal
// detail never reaches the caller.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Sugar.Errorf("Panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
