package logger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger logs one line per HTTP request.
func RequestLogger(zl zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			event := zl.Info()
			if status >= http.StatusInternalServerError {
				event = zl.Error()
			}
			event.
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("http_request")
		})
	}
}

// Goose adapts a zerolog logger to goose's logging interface.
type Goose struct {
	Log zerolog.Logger
}

func (g Goose) Printf(format string, v ...interface{}) {
	g.Log.Info().Str("component", "migrations").Msg(fmt.Sprintf(format, v...))
}

func (g Goose) Fatalf(format string, v ...interface{}) {
	g.Log.Fatal().Str("component", "migrations").Msg(fmt.Sprintf(format, v...))
}
