package pathext

import (
	"path"
	"strings"
)

func IsRoot(p string, trim bool) bool {
	if trim && len(strings.TrimSpace(p)) == 0 {
		return true
	}

	return p == "" || p == "." || p == "/" || p == "./"
}

// Clean resolves a request path against "/", so ".." can't climb above it.
func Clean(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return path.Clean(p)
}

func HasTrailingSlash(p string) bool {
	return strings.HasSuffix(p, "/")
}
