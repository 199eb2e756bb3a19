package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/pkg/errors"
	"github.com/pojntfx/corsfs/internal/handlers"
	"github.com/pojntfx/corsfs/pkg/config"
	"github.com/pojntfx/corsfs/pkg/cors"
	"github.com/pojntfx/corsfs/pkg/fileserver"
	"github.com/pojntfx/corsfs/pkg/logging"
	"github.com/spf13/afero"
	"golang.org/x/net/netutil"
)

const (
	ShutdownTimeout = 5 * time.Second
)

var (
	ErrAlreadyListening = errors.New("server is already listening")
	ErrNotListening     = errors.New("server is not listening")
)

type Server struct {
	config *config.Config
	fs     afero.Fs
	log    logging.StructuredLogger

	lock     sync.Mutex
	listener net.Listener
	srv      *http.Server
}

func NewServer(
	cfg *config.Config,
	fs afero.Fs,
	log logging.StructuredLogger,
) *Server {
	return &Server{
		config: cfg,
		fs:     fs,
		log:    log,
	}
}

// Handler returns the complete middleware chain. The CORS stage is outermost
// so that it also covers responses produced by panic recovery, and requests
// are logged with the status written by it.
func (s *Server) Handler() http.Handler {
	var h http.Handler = fileserver.NewFileServer(s.fs, s.log)

	if s.config.Compression == config.CompressionFormatGZipKey {
		h = gzhttp.GzipHandler(h)
	}

	h = handlers.PanicHandler(h, s.log)
	h = handlers.LogHandler(h, handlers.RequestEventLogger(s.log))

	return cors.Handler(h)
}

// Listen binds the listening socket. Failures are returned as *config.BindError.
func (s *Server) Listen() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener != nil {
		return ErrAlreadyListening
	}

	addr := s.config.Addr()

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return &config.BindError{Addr: addr, Err: err}
	}

	if s.config.MaxConnections > 0 {
		l = netutil.LimitListener(l, s.config.MaxConnections)
	}

	s.listener = cors.NewListener(l)
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ConnContext:       cors.ConnContext,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	return nil
}

// Addr returns the address the server is bound to, which differs from the
// configured one if port 0 was requested.
func (s *Server) Addr() net.Addr {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// Port returns the bound TCP port.
func (s *Server) Port() int {
	addr := s.Addr()
	if addr == nil {
		return -1
	}

	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.Port
	}

	_, rawPort, err := net.SplitHostPort(addr.String())
	if err != nil {
		return -1
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return -1
	}

	return port
}

// Serve accepts connections until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	s.lock.Lock()
	l, srv := s.listener, s.srv
	s.lock.Unlock()

	if l == nil {
		return ErrNotListening
	}

	s.log.Info("HTTP server listening", "laddr", l.Addr().String(), "root", s.config.Root)

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(l)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		s.log.Info("HTTP server shutting down", "laddr", l.Addr().String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return srv.Close()
		}

		return nil
	}
}
