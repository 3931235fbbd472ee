package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"accessdesk/pkg/domerrors"
	"accessdesk/pkg/httputil"
	"accessdesk/pkg/requestcontext"
)

// RequireAuth rejects requests without a valid bearer token and injects the
// portal user ID into the context for services and the audit ledger.
func RequireAuth(jwt *JWTService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			const bearerPrefix = "Bearer "
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				httputil.WriteError(w, domerrors.New(domerrors.CodeUnauthorized, "authentication required"))
				return
			}

			userID, err := jwt.ExtractUserID(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			ctx = requestcontext.WithUserID(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
