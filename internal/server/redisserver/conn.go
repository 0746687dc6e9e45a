package redisserver

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// Conn is one client connection.
type Conn struct {
	id      string
	netConn net.Conn
	reader  *resp.Reader
	writer  *resp.Writer

	closed atomic.Bool
}

func newConn(id string, c net.Conn, cfg *Config) *Conn {
	conn := &Conn{id: id, netConn: c}
	tr := &deadlineReader{
		conn:        c,
		idleTimeout: orDefault(cfg.IdleTimeout, defaultIdleTimeout),
		readTimeout: orDefault(cfg.ReadTimeout, defaultReadTimeout),
	}
	conn.reader = resp.NewReader(tr, resp.WithLimits(cfg.Limits))
	tr.pending = conn.reader.Buffered
	conn.writer = resp.NewWriter(c)
	return conn
}

// ID returns the connection ID.
func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the client address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// Close closes the connection. It is safe to call more than once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// remoteIP returns the client IP without the port.
func (c *Conn) remoteIP() string {
	addr := c.netConn.RemoteAddr()
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// deadlineReader sets a read deadline before every read. Between frames
// the client may stay idle for idleTimeout; once part of a frame has
// arrived the rest must follow within readTimeout.
type deadlineReader struct {
	conn        net.Conn
	pending     func() int
	idleTimeout time.Duration
	readTimeout time.Duration
}

func (r *deadlineReader) Read(p []byte) (int, error) {
	timeout := r.idleTimeout
	if r.pending != nil && r.pending() > 0 {
		timeout = r.readTimeout
	}
	if err := r.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, err
	}
	return r.conn.Read(p)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
