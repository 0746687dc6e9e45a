package connection

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// DefaultTimeout bounds dialing and each request when the context has no
// deadline.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned by Do after Close.
var ErrClosed = errors.New("connection: client closed")

// Client is a RESP client over a single TCP connection. It is safe for
// concurrent use; requests are serialised.
type Client struct {
	addr    string
	timeout time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *resp.Reader
	writer *resp.Writer
	closed bool
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the dial and per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Dial connects to the server at addr.
func Dial(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	c := &Client{addr: addr, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}

	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.reader = resp.NewReader(conn)
	c.writer = resp.NewWriter(conn)
	return c, nil
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends args as a command and returns the reply. Error replies are
// returned as frames, not as errors; the error result reports transport
// failures only.
func (c *Client) Do(ctx context.Context, args ...string) (resp.Frame, error) {
	elems := make([]resp.Frame, len(args))
	for i, a := range args {
		elems[i] = resp.BulkText(a)
	}
	return c.DoFrame(ctx, resp.Array(elems...))
}

// DoFrame sends an arbitrary request frame and returns the reply.
func (c *Client) DoFrame(ctx context.Context, req resp.Frame) (resp.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return resp.Frame{}, ErrClosed
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return resp.Frame{}, err
	}

	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := c.writer.WriteFrame(req); err != nil {
		return resp.Frame{}, err
	}
	if err := c.writer.Flush(); err != nil {
		return resp.Frame{}, err
	}
	reply, err := c.reader.ReadFrame()
	if err != nil {
		if ctx.Err() != nil {
			return resp.Frame{}, ctx.Err()
		}
		return resp.Frame{}, err
	}
	return reply, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
