package cors

import (
	"bytes"
	"context"
	"net"
	"sync/atomic"
)

var (
	httpPrefix    = []byte("HTTP/1.")
	headerEnd     = []byte("\r\n\r\n")
	originHeader  = []byte("\r\naccess-control-allow-origin:")
	statusCodeIdx = len("HTTP/1.1 ")
)

type connContextKey struct{}

// Listener wraps accepted connections so that responses written by net/http
// itself, such as "400 Bad Request" for a malformed request line, carry the
// CORS headers too. It has to be combined with ConnContext and Handler.
type Listener struct {
	net.Listener
}

func NewListener(l net.Listener) *Listener {
	return &Listener{l}
}

func (l *Listener) Accept() (net.Conn, error) {
	c, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}

	return &conn{Conn: c}, nil
}

// ConnContext is meant for http.Server.ConnContext.
func ConnContext(ctx context.Context, c net.Conn) context.Context {
	if cc, ok := c.(*conn); ok {
		return context.WithValue(ctx, connContextKey{}, cc)
	}

	return ctx
}

const (
	stateIdle int32 = iota
	stateBusy
	stateFinishing
)

type conn struct {
	net.Conn

	// Writes are left alone unless the connection is idle. A response is
	// finishing from the moment its handler returns until net/http reads
	// the next request, which happens only after the response was written.
	state atomic.Int32
}

func (c *conn) acquire() {
	c.state.Store(stateBusy)
}

func (c *conn) release() {
	c.state.Store(stateFinishing)
}

func (c *conn) Read(p []byte) (int, error) {
	c.state.CompareAndSwap(stateFinishing, stateIdle)

	return c.Conn.Read(p)
}

func (c *conn) Write(p []byte) (int, error) {
	if c.state.Load() != stateIdle {
		return c.Conn.Write(p)
	}

	rewritten, ok := injectHeaders(p)
	if !ok {
		return c.Conn.Write(p)
	}

	if _, err := c.Conn.Write(rewritten); err != nil {
		return 0, err
	}

	return len(p), nil
}

func (c *conn) CloseWrite() error {
	if cw, ok := c.Conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}

	return nil
}

// injectHeaders adds the CORS headers to a complete, non-informational
// response head which doesn't have them yet.
func injectHeaders(p []byte) ([]byte, bool) {
	if !bytes.HasPrefix(p, httpPrefix) || len(p) <= statusCodeIdx || p[statusCodeIdx] == '1' {
		return nil, false
	}

	end := bytes.Index(p, headerEnd)
	if end < 0 {
		return nil, false
	}

	if bytes.Contains(bytes.ToLower(p[:end]), originHeader) {
		return nil, false
	}

	rewritten := make([]byte, 0, len(p)+128)
	rewritten = append(rewritten, p[:end]...)
	for _, header := range Headers {
		rewritten = append(rewritten, "\r\n"+header[0]+": "+header[1]...)
	}
	rewritten = append(rewritten, p[end:]...)

	return rewritten, true
}
