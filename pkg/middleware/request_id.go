package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/qualinet/review-planner/pkg/requestid"
)

// RequestID makes a request id available through the requestid package for
// every request: it honors an incoming x-request-id header, falls back to
// chi's generated id, and mints a UUID when neither is present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("x-request-id")
		if id == "" {
			id = middleware.GetReqID(r.Context())
		}
		if id == "" {
			id = requestid.Generate()
		}

		next.ServeHTTP(w, r.WithContext(requestid.ToContext(r.Context(), id)))
	})
}
