package httpmiddleware

import (
	"net/http"

	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// CorrelationID middleware guarantees every request carries a valid
// correlation ID header and enriches the request context with it.
// Invalid or missing client-provided IDs are replaced with a fresh one.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, _ = logger.EnsureHTTPCorrelationID(r)

			next.ServeHTTP(w, r)
		})
	}
}
