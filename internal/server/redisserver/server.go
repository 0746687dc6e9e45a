package redisserver

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/resp"
)

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 5 * time.Minute

	pruneInterval = time.Minute
)

// ErrServerClosed is returned by Serve after Shutdown.
var ErrServerClosed = errors.New("redisserver: server closed")

// Config holds the RESP server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// ReadTimeout bounds reading the rest of a request once it started.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one reply.
	WriteTimeout time.Duration
	// IdleTimeout bounds the wait for the next request.
	IdleTimeout time.Duration
	// RateLimit is the maximum commands per second per client IP.
	// Zero disables rate limiting.
	RateLimit int
	// Limits bounds decoded frames. Zero fields use resp.DefaultLimits.
	Limits resp.Limits
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:6379",
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}
}

// Server is the RESP protocol server.
type Server struct {
	cfg     *Config
	store   command.Store
	logger  logger.Logger
	metrics *metric.Registry
	limiter *rateLimiter

	mu      sync.Mutex
	ln      net.Listener
	conns   map[*Conn]struct{}
	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics records command and connection metrics in r.
func WithMetrics(r *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = r
	}
}

// New creates a server executing commands against store.
func New(cfg *Config, store command.Store, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger.Default(),
		conns:  make(map[*Conn]struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.RateLimit > 0 {
		s.limiter = newRateLimiter(cfg.RateLimit)
	}
	return s
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("redis server listening", "addr", ln.Addr().String())

	go func() {
		if err := s.Serve(ctx, ln); err != nil && !errors.Is(err, ErrServerClosed) {
			s.logger.Error("redis server stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections on ln until Shutdown is called. It always
// returns a non-nil error; after Shutdown the error is ErrServerClosed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if !s.running.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return errors.New("redisserver: already serving")
	}
	select {
	case <-s.done:
		s.mu.Unlock()
		_ = ln.Close()
		return ErrServerClosed
	default:
	}
	s.ln = ln
	s.mu.Unlock()

	if s.limiter != nil {
		s.wg.Add(1)
		go s.pruneLoop()
	}

	for {
		c, err := ln.Accept()
		if err != nil {
			select {
			case <-s.done:
				return ErrServerClosed
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.logger.Warn("accept timeout", "error", err)
				time.Sleep(5 * time.Millisecond)
				continue
			}
			return err
		}

		conn := newConn(logger.NewConnID(), c, s.cfg)
		if !s.track(conn) {
			_ = conn.Close()
			return ErrServerClosed
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.serveConn(ctx, conn)
		}()
	}
}

// Shutdown stops accepting, closes every open connection and waits for
// the connection goroutines to exit or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	var err error
	if s.ln != nil {
		if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = cerr
		}
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		s.logger.Info("redis server stopped")
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ActiveConns returns the number of open connections.
func (s *Server) ActiveConns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) track(c *Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return false
	default:
	}
	s.conns[c] = struct{}{}
	if s.metrics != nil {
		s.metrics.ConnectionsTotal.Inc()
		s.metrics.ConnectionsActive.Inc()
	}
	return true
}

func (s *Server) untrack(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
	if s.metrics != nil {
		s.metrics.ConnectionsActive.Dec()
	}
}

func (s *Server) pruneLoop() {
	defer s.wg.Done()
	t := time.NewTicker(pruneInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if n := s.limiter.prune(clientIdleTTL); n > 0 {
				s.logger.Debug("pruned idle rate limiters", "count", n)
			}
		case <-s.done:
			return
		}
	}
}

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	defer c.Close()

	ctx = logger.WithConnID(logger.WithLogger(ctx, s.logger), c.ID())
	log := logger.L(ctx).With("remote", c.RemoteAddr().String())
	log.Debug("connection opened")
	defer log.Debug("connection closed")

	writeTimeout := orDefault(s.cfg.WriteTimeout, defaultWriteTimeout)
	ip := c.remoteIP()

	for {
		frame, err := c.reader.ReadFrame()
		if err != nil {
			s.handleReadError(c, log, err, writeTimeout)
			return
		}

		reply := s.dispatch(ip, frame)

		if err := c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return
		}
		if err := c.writer.WriteFrame(reply); err != nil {
			log.Debug("write failed", "error", err)
			return
		}
		if err := c.writer.Flush(); err != nil {
			log.Debug("flush failed", "error", err)
			return
		}
	}
}

// dispatch parses and executes one request frame.
func (s *Server) dispatch(ip string, frame resp.Frame) resp.Frame {
	if s.limiter != nil && !s.limiter.allow(ip) {
		if s.metrics != nil {
			s.metrics.RateLimited.Inc()
		}
		return resp.SimpleError("ERR rate limit exceeded")
	}

	start := time.Now()
	cmd, err := command.Parse(frame)
	if err != nil {
		s.observe(verbLabel(err), metric.StatusError, 0)
		return command.ErrorReply(err)
	}

	reply := cmd.Execute(s.store)
	s.observe(cmd.Verb(), metric.StatusOK, time.Since(start))
	return reply
}

func (s *Server) observe(verb, status string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveCommand(verb, status, d)
	}
}

// verbLabel bounds metric label cardinality: unknown verbs share a label.
func verbLabel(err error) string {
	var pe *command.ParseError
	if !errors.As(err, &pe) || pe.Verb == "" || errors.Is(err, command.ErrInvalidCommand) {
		return "unknown"
	}
	return pe.Verb
}

func (s *Server) handleReadError(c *Conn, log logger.Logger, err error, writeTimeout time.Duration) {
	switch {
	case errors.Is(err, io.EOF):
		return
	case errors.Is(err, resp.ErrProtocol), errors.Is(err, resp.ErrLimitExceeded):
		if s.metrics != nil {
			s.metrics.ProtocolErrors.Inc()
		}
		log.Warn("protocol error, closing connection", "error", err)
		_ = c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout))
		_ = c.writer.WriteFrame(resp.SimpleError("ERR protocol error"))
		_ = c.writer.Flush()
	case isTimeout(err):
		log.Debug("connection timed out")
	case errors.Is(err, net.ErrClosed), errors.Is(err, io.ErrUnexpectedEOF):
		log.Debug("connection dropped", "error", err)
	default:
		log.Debug("connection read error", "error", err)
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
