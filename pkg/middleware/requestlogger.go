package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SftwreDev/talipapaup-backend/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched with
// context-derived fields such as the correlation ID. Handlers retrieve it via
// logger.FromContext. Must be mounted after RequestLogging so the correlation
// ID is already present in the context.
func RequestLogger(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped := logger.WithContext(r.Context(), l)
			ctx := logger.NewContext(r.Context(), scoped)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
