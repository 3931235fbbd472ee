// Package requestid assigns each request a stable ID for log correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"accessdesk/pkg/requestcontext"
)

// Header is the inbound/outbound request ID header. An inbound value from a
// trusted proxy is reused so the gateway and services share one ID.
const Header = "X-Request-Id"

// RequestID injects a request ID into the context and echoes it on the
// response. Apply before any middleware that logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(Header, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
