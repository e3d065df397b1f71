package middleware

import (
	"net/http"
	"time"

	"github.com/effective-security/xlog"
	chimw "github.com/go-chi/chi/v5/middleware"
)

var logger = xlog.NewPackageLogger("github.com/matiasleandrokruk/nasamini/internal/api", "middleware")

// RequestLogger logs one line per request after the handler returns.
// Expected order in router: RequestID -> RealIP -> RequestLogger -> Recoverer.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		logger.ContextKV(r.Context(), levelFromStatus(recorder.statusCode),
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", chimw.GetReqID(r.Context()),
			"remote", r.RemoteAddr,
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

// Flush keeps streaming responses (MCP over SSE) working through the recorder.
func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func levelFromStatus(statusCode int) xlog.LogLevel {
	switch {
	case statusCode >= http.StatusInternalServerError:
		return xlog.ERROR
	case statusCode >= http.StatusBadRequest:
		return xlog.WARNING
	default:
		return xlog.INFO
	}
}
