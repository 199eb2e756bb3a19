package fileserver

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pojntfx/corsfs/internal/pathext"
	"github.com/pojntfx/corsfs/pkg/logging"
	"github.com/spf13/afero"
)

const (
	DefaultContentType = "application/octet-stream"
	htmlContentType    = "text/html; charset=utf-8"
)

var (
	IndexFiles = []string{"index.html", "index.htm"}
)

// NewOSFileSystem exposes the directory root as a read-only afero.Fs. Paths
// opened through it can't resolve above root.
func NewOSFileSystem(root string) (afero.Fs, error) {
	if pathext.IsRoot(root, true) {
		root = "."
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), abs)), nil
}

// ContentType guesses the MIME type from the extension of name.
func ContentType(name string) string {
	if contentType := mime.TypeByExtension(strings.ToLower(path.Ext(name))); contentType != "" {
		return contentType
	}

	return DefaultContentType
}

type FileServer struct {
	fs  afero.Fs
	log logging.StructuredLogger
}

func NewFileServer(fs afero.Fs, log logging.StructuredLogger) *FileServer {
	return &FileServer{fs, log}
}

func (s *FileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.serveError(w, r, &RequestError{http.StatusNotImplemented, r.URL.Path, ErrMethodUnsupported}, fmt.Sprintf("Unsupported method (%v)", r.Method))

		return
	}

	name := pathext.Clean(r.URL.Path)

	info, err := s.fs.Stat(name)
	if err != nil {
		s.serveError(w, r, newRequestError(r.URL.Path, err), "")

		return
	}

	if info.IsDir() {
		if !pathext.HasTrailingSlash(r.URL.Path) {
			location := (&url.URL{Path: strings.TrimSuffix(name, "/") + "/"}).EscapedPath()
			if r.URL.RawQuery != "" {
				location += "?" + r.URL.RawQuery
			}

			w.Header().Set("Location", location)
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusMovedPermanently)

			return
		}

		for _, index := range IndexFiles {
			indexName := path.Join(name, index)

			indexInfo, err := s.fs.Stat(indexName)
			if err == nil && !indexInfo.IsDir() {
				s.serveFile(w, r, indexName, indexInfo)

				return
			}
		}

		s.serveDirectory(w, r, name)

		return
	}

	// Regular files can't have children
	if pathext.HasTrailingSlash(r.URL.Path) {
		s.serveError(w, r, &RequestError{http.StatusNotFound, r.URL.Path, ErrFileNotFound}, "")

		return
	}

	s.serveFile(w, r, name, info)
}

func (s *FileServer) serveFile(w http.ResponseWriter, r *http.Request, name string, info os.FileInfo) {
	f, err := s.fs.Open(name)
	if err != nil {
		s.serveError(w, r, newRequestError(r.URL.Path, err), "")

		return
	}
	defer f.Close()

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", ContentType(name))
	}

	s.log.Trace("Serving file", "path", name, "size", info.Size())

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *FileServer) serveDirectory(w http.ResponseWriter, r *http.Request, name string) {
	infos, err := afero.ReadDir(s.fs, name)
	if err != nil {
		s.serveError(w, r, &RequestError{http.StatusNotFound, r.URL.Path, ErrDirectoryUnlistable}, "")

		return
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return strings.ToLower(infos[i].Name()) < strings.ToLower(infos[j].Name())
	})

	page := listingPage{
		Path:    r.URL.Path,
		Entries: make([]listingEntry, 0, len(infos)),
	}
	for _, info := range infos {
		displayName := info.Name()
		linkName := info.Name()

		isDir := info.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := s.fs.Stat(path.Join(name, info.Name())); err == nil {
				isDir = target.IsDir()
			}
		}

		if isDir {
			displayName += "/"
			linkName += "/"
		}

		if info.Mode()&os.ModeSymlink != 0 {
			displayName = info.Name() + "@"
		}

		page.Entries = append(page.Entries, listingEntry{
			Name: displayName,
			Href: (&url.URL{Path: linkName}).String(),
		})
	}

	s.log.Trace("Listing directory", "path", name, "entries", len(page.Entries))

	s.writeHTML(w, r, http.StatusOK, listingTemplate, page)
}

func (s *FileServer) serveError(w http.ResponseWriter, r *http.Request, rerr *RequestError, message string) {
	s.log.Debug("Request failed", "path", rerr.Path, "status", rerr.Status, "err", rerr.Err.Error())

	if message == "" {
		message = publicMessage(rerr)
	}

	s.writeHTML(w, r, rerr.Status, errorTemplate, errorPage{
		Status:     rerr.Status,
		StatusText: http.StatusText(rerr.Status),
		Message:    message,
	})
}

func (s *FileServer) writeHTML(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, data interface{}) {
	body := &bytes.Buffer{}
	if err := tmpl.Execute(body, data); err != nil {
		s.log.Error("Could not render page", "err", err.Error())

		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}

	if _, err := w.Write(body.Bytes()); err != nil {
		s.log.Debug("Could not write response", "path", r.URL.Path, "err", err.Error())
	}
}
