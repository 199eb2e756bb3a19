// Package cors attaches a fixed set of permissive CORS headers to every
// response, including the ones net/http writes on its own when it rejects a
// malformed request.
package cors

import (
	"io"
	"net/http"

	"github.com/pojntfx/corsfs/pkg/config"
)

// Headers are emitted in this order wherever the order can be controlled.
var Headers = [][2]string{
	{config.HeaderAllowOrigin, config.AllowOrigin},
	{config.HeaderAllowMethods, config.AllowMethods},
	{config.HeaderAllowHeaders, config.AllowHeaders},
}

func Apply(h http.Header) {
	for _, header := range Headers {
		h.Set(header[0], header[1])
	}
}

type responseWriter struct {
	http.ResponseWriter

	applied bool
}

func (w *responseWriter) apply() {
	if w.applied {
		return
	}

	Apply(w.Header())

	w.applied = true
}

func (w *responseWriter) WriteHeader(status int) {
	w.apply()

	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(p []byte) (int, error) {
	w.apply()

	return w.ResponseWriter.Write(p)
}

func (w *responseWriter) ReadFrom(r io.Reader) (int64, error) {
	w.apply()

	if rf, ok := w.ResponseWriter.(io.ReaderFrom); ok {
		return rf.ReadFrom(r)
	}

	return io.Copy(struct{ io.Writer }{w.ResponseWriter}, r)
}

func (w *responseWriter) Flush() {
	w.apply()

	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Handler adds the CORS headers right before next finalizes its header block.
// Headers set by next are kept.
func Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := r.Context().Value(connContextKey{}).(*conn); ok {
			c.acquire()
			defer c.release()
		}

		cw := &responseWriter{ResponseWriter: w}
		defer cw.apply()

		next.ServeHTTP(cw, r)
	})
}
