package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pojntfx/corsfs/internal/ioext"
	"github.com/pojntfx/corsfs/pkg/config"
	"github.com/pojntfx/corsfs/pkg/logging"
)

type statusWriter struct {
	http.ResponseWriter

	status  int
	counter *ioext.CounterWriter
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}

	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	return w.counter.Write(p)
}

func (w *statusWriter) ReadFrom(r io.Reader) (int64, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	return io.Copy(w.counter, r)
}

func (w *statusWriter) Flush() {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// LogHandler reports every request to onRequest after h has handled it.
func LogHandler(h http.Handler, onRequest func(event *config.RequestEvent)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, counter: &ioext.CounterWriter{Writer: w}}

		var body *ioext.CounterReadCloser
		if r.Body != nil {
			body = &ioext.CounterReadCloser{Reader: r.Body}
			r.Body = body
		}

		defer func() {
			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			event := &config.RequestEvent{
				ID:         uuid.NewString(),
				Method:     r.Method,
				Path:       r.URL.Path,
				RemoteAddr: r.RemoteAddr,
				Status:     status,
				Bytes:      sw.counter.BytesWritten,
				Duration:   time.Since(start),
			}
			if body != nil {
				event.RequestBytes = body.BytesRead
			}

			onRequest(event)
		}()

		h.ServeHTTP(sw, r)
	})
}

// RequestEventLogger logs request events at debug level.
func RequestEventLogger(log logging.StructuredLogger) func(event *config.RequestEvent) {
	return func(event *config.RequestEvent) {
		log.Debug("HTTP request",
			"id", event.ID,
			"method", event.Method,
			"path", event.Path,
			"remoteAddr", event.RemoteAddr,
			"status", event.Status,
			"bytes", event.Bytes,
			"requestBytes", event.RequestBytes,
			"duration", event.Duration.String(),
		)
	}
}
