package testutil

import (
	"net/http"
	"time"

	"accessdesk/pkg/requestcontext"
)

// WithUserID adds an authenticated portal user ID to the request context.
// This simulates what the auth middleware does for authenticated requests.
func WithUserID(req *http.Request, userID int64) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	return req.WithContext(ctx)
}

// WithClientMetadata stamps client IP and user agent on the request context
// the way the metadata middleware would.
func WithClientMetadata(req *http.Request, ip, userAgent string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, userAgent)
	return req.WithContext(ctx)
}

// WithFixedTime pins the context clock so audit timestamps are deterministic.
func WithFixedTime(req *http.Request, now time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), now)
	return req.WithContext(ctx)
}
