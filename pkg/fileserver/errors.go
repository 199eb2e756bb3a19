package fileserver

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMethodUnsupported   = errors.New("unsupported method")
	ErrFileNotFound        = errors.New("file not found")
	ErrDirectoryUnlistable = errors.New("no permission to list directory")
)

// RequestError is a failure scoped to a single request. It is turned into
// an HTML error response and never escapes the handler.
type RequestError struct {
	Status int
	Path   string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("could not serve %v (%v): %v", e.Path, e.Status, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// newRequestError maps a failed lookup of p to a response status. Any
// failure to resolve or open a path, such as a component that is a file or
// a name that is too long, means the path can't be served and is a 404.
func newRequestError(p string, err error) *RequestError {
	var pathErr *os.PathError
	if os.IsNotExist(err) || os.IsPermission(err) || errors.As(err, &pathErr) {
		return &RequestError{http.StatusNotFound, p, ErrFileNotFound}
	}

	return &RequestError{http.StatusInternalServerError, p, err}
}

// publicMessage is the text shown to clients for e. Wrapped OS errors can
// contain absolute paths of the host, so only known errors are rendered.
func publicMessage(e *RequestError) string {
	for _, known := range []error{ErrMethodUnsupported, ErrFileNotFound, ErrDirectoryUnlistable} {
		if e.Err == known {
			message := known.Error()

			return strings.ToUpper(message[:1]) + message[1:]
		}
	}

	return http.StatusText(e.Status)
}
