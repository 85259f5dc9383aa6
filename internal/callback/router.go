package callback

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/oauth-aircall/pkg/logger"
)

// NewRouter mounts the login routes behind the standard middleware stack
// and adds a liveness probe at /health/live.
func NewRouter(h *Handler, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.NewNope()
	}

	r := chi.NewRouter()
	r.Use(
		RequestID,
		middleware.RealIP,
		requestLogger(log),
		middleware.Recoverer,
	)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	h.Routes(r)

	return r
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
