package handlers

import (
	"fmt"
	"net/http"

	"github.com/pojntfx/corsfs/pkg/logging"
)

func PanicHandler(h http.Handler, log logging.StructuredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				// Let net/http abort the connection as requested
				if err == http.ErrAbortHandler {
					panic(err)
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

				log.Error("Error during HTTP request", "err", fmt.Sprintf("%v", err), "path", r.URL.Path)
			}
		}()

		h.ServeHTTP(w, r)
	})
}
