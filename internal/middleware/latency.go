package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// SimulatedLatency delays every request by d before calling the handler.
// If the client goes away during the delay the handler is never called,
// so no stale read is served to a caller that stopped waiting.
func SimulatedLatency(d time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timer := time.NewTimer(d)
			defer timer.Stop()

			select {
			case <-timer.C:
				next.ServeHTTP(w, r)
			case <-r.Context().Done():
				logger.Debug("request abandoned during simulated latency",
					zap.String("path", r.URL.Path),
					zap.Error(r.Context().Err()),
				)
			}
		})
	}
}
