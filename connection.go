package ssdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/pior/ssdb/internal/coarsetime"
	"github.com/pior/ssdb/wire"
)

// Transport is the byte stream a Connection talks over. net.Conn satisfies it.
//
// Read returning a timeout error (net.Error with Timeout() true) means the
// deadline expired and the transport is still usable; any other read error,
// io.EOF included, means the peer is gone.
type Transport interface {
	io.Reader
	io.Writer
	io.Closer
	SetDeadline(t time.Time) error
}

// Connection is a client connection to one SSDB server.
//
// Every request blocks until its response is fully decoded. Exactly one
// request is in flight at a time; Batch writes several requests before
// reading their responses, in order.
//
// A Connection is not safe for concurrent use. Serialize access externally
// or use one connection per goroutine.
//
// Once closed, by Close or by a transport failure, a connection is never
// reopened and every request fails with an error wrapping ErrConnectionLost.
type Connection struct {
	Commands

	addr      string
	transport Transport
	parser    wire.Parser
	readBuf   []byte
	writeBuf  []byte

	timeout time.Duration
	logger  *slog.Logger

	easy        bool
	closed      bool
	pendingAuth *string
	batch       *Batch
	last        *Response
	lastUsed    time.Time

	stats *statsCollector
}

// NewConnection wraps an open transport. The connection owns it from now on
// and closes it exactly once.
func NewConnection(transport Transport, opts ...Option) *Connection {
	return newConnection(transport, newOptions(opts))
}

func newConnection(transport Transport, o options) *Connection {
	c := &Connection{
		transport:   transport,
		readBuf:     make([]byte, o.readBufferSize),
		timeout:     o.timeout,
		logger:      o.logger,
		easy:        o.easy,
		pendingAuth: o.password,
		lastUsed:    coarsetime.Now(),
		stats:       newStatsCollector(),
	}
	c.parser.MaxBlockSize = o.maxBlockSize
	c.Commands = Commands{executor: c}

	if conn, ok := transport.(net.Conn); ok && conn.RemoteAddr() != nil {
		c.addr = conn.RemoteAddr().String()
	}

	return c
}

// Dial connects to an SSDB server at addr (host:port).
// The configured timeout bounds the connect in addition to ctx.
func Dial(ctx context.Context, addr string, opts ...Option) (*Connection, error) {
	o := newOptions(opts)

	dialer := o.dialer
	if dialer == nil {
		dialer = &Dialer{}
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	netConn, err := dialer.DialContext(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("ssdb: dial %s: %w", addr, err)
	}

	c := newConnection(netConn, o)
	c.addr = addr
	c.logger.Debug("ssdb: connected", "addr", addr)
	return c, nil
}

// DialConfig connects using a Config. Extra options override it.
func DialConfig(ctx context.Context, config Config, opts ...Option) (*Connection, error) {
	return Dial(ctx, config.Addr(), append(config.Options(), opts...)...)
}

// Addr returns the server address, if known.
func (c *Connection) Addr() string {
	return c.addr
}

// SetTimeout changes the per-request timeout. Zero disables it.
func (c *Connection) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// EnableEasyMode switches Call and Batch.Flush to plain values: the data on
// success, nil for not_found and false for other errors (see Response.Value).
// Authentication failures are folded into false as well. Errors that closed
// the connection, timeouts and context cancellation are still returned.
//
// Easy mode cannot be disabled.
func (c *Connection) EnableEasyMode() {
	c.easy = true
}

// EasyMode reports whether easy mode is enabled.
func (c *Connection) EasyMode() bool {
	return c.easy
}

// Auth registers a password without contacting the server. The next command
// first sends auth with it; if that does not succeed, the command is not sent
// and an *AuthError is returned.
func (c *Connection) Auth(password string) {
	c.pendingAuth = &password
}

// LastResponse returns the most recent response received, nil before the first.
func (c *Connection) LastResponse() *Response {
	return c.last
}

// LastUsed returns when the connection last completed a request, to within
// a few tens of milliseconds.
func (c *Connection) LastUsed() time.Time {
	return c.lastUsed
}

// Closed reports whether the connection is closed.
func (c *Connection) Closed() bool {
	return c.closed
}

// Stats returns a snapshot of connection statistics.
func (c *Connection) Stats() Stats {
	return c.stats.snapshot()
}

// Close closes the connection. It is safe to call more than once; only the
// first call closes the transport.
func (c *Connection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.batch = nil
	return c.transport.Close()
}

// Do sends one command and returns its classified response.
//
// The command name is case-insensitive. Arguments are flattened as described
// for Commands. Server-side failures are reported in the Response, not as an
// error, except noauth which returns an *AuthError. Errors are:
//
//   - *wire.ConnectionError: transport failure, the connection is closed
//   - *wire.TimeoutError: no response before the deadline, the connection is open
//   - *wire.ParseError: malformed response, the connection is closed
//   - *AuthError: noauth, or a failed deferred auth
//   - ErrBatchOpen: a batch is being built
func (c *Connection) Do(ctx context.Context, cmd string, args ...any) (*Response, error) {
	if c.closed {
		return nil, errClosed()
	}
	if c.batch != nil {
		return nil, ErrBatchOpen
	}

	cmd = strings.ToLower(cmd)
	if err := c.applyDeferredAuth(ctx, cmd); err != nil {
		return nil, err
	}

	resp, err := c.roundTrip(ctx, cmd, appendArgs(nil, args...))
	if err != nil {
		return nil, err
	}

	if resp.Code == wire.StatusNoAuth {
		return nil, &AuthError{Message: resp.Message, Response: resp}
	}
	return resp, nil
}

// Call is the mode-aware form of Do. It returns the *Response, or in easy mode
// the plain value from Response.Value.
//
// In easy mode, an error that leaves the connection usable (an *AuthError,
// ErrBatchOpen) is recorded as an error response and reported as false.
func (c *Connection) Call(ctx context.Context, cmd string, args ...any) (any, error) {
	resp, err := c.Do(ctx, cmd, args...)
	if err != nil {
		if !c.easy || isFatal(err) {
			return nil, err
		}
		resp = errorResponse(strings.ToLower(cmd), wire.StatusError, err.Error())
		c.last = resp
	}
	return c.shape(resp), nil
}

func (c *Connection) shape(resp *Response) any {
	if c.easy {
		return resp.Value()
	}
	return resp
}

// applyDeferredAuth sends the pending auth, if any, before cmd.
// The credential is cleared before sending so a failure is not retried.
func (c *Connection) applyDeferredAuth(ctx context.Context, cmd string) error {
	if c.pendingAuth == nil {
		return nil
	}

	password := *c.pendingAuth
	c.pendingAuth = nil

	if cmd == "auth" {
		return nil
	}

	resp, err := c.roundTrip(ctx, "auth", [][]byte{[]byte(password)})
	if err != nil {
		return err
	}

	if ok, _ := resp.Data.(bool); !resp.OK() || !ok {
		c.logger.Warn("ssdb: deferred auth failed", "addr", c.addr, "code", resp.Code, "message", resp.Message)
		return &AuthError{Message: "Authentication failed", Response: resp}
	}
	return nil
}

// roundTrip writes one request and reads its response.
func (c *Connection) roundTrip(ctx context.Context, cmd string, args [][]byte) (*Response, error) {
	if err := c.begin(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug("ssdb: request", "cmd", cmd, "args", len(args))

	n, err := wire.WriteRequest(c.transport, cmd, args)
	c.stats.recordWritten(n)
	if err != nil {
		return nil, c.writeFailure(err)
	}
	c.stats.recordRequests(1)

	return c.receive(cmd, args)
}

// begin checks the connection can send and arms the deadline.
func (c *Connection) begin(ctx context.Context) error {
	if c.closed {
		return errClosed()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var deadline time.Time
	if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	if err := c.transport.SetDeadline(deadline); err != nil {
		return c.fail("deadline", err)
	}
	return nil
}

// receive reads and classifies the response to cmd.
func (c *Connection) receive(cmd string, args [][]byte) (*Response, error) {
	group, err := c.readGroup()
	if err != nil {
		return nil, err
	}

	resp := Classify(cmd, args, group)
	c.stats.recordResponse(resp)
	c.last = resp
	c.lastUsed = coarsetime.Now()

	c.logger.Debug("ssdb: response", "cmd", cmd, "code", resp.Code, "blocks", len(group))
	return resp, nil
}

// readGroup runs the parser, reading from the transport each time it needs
// more bytes, until a block-group is complete.
func (c *Connection) readGroup() ([][]byte, error) {
	var readErr error
	for {
		group, err := c.parser.Next()
		if err != nil {
			c.stats.recordConnectionError()
			c.logger.Warn("ssdb: malformed response, closing connection", "addr", c.addr, "error", err)
			_ = c.Close()
			return nil, err
		}
		if group != nil {
			return group, nil
		}

		// Bytes returned alongside an error were parsed above first.
		if readErr != nil {
			return nil, c.readFailure(readErr)
		}

		n, err := c.transport.Read(c.readBuf)
		if n > 0 {
			c.parser.Feed(c.readBuf[:n])
			c.stats.recordRead(n)
		}
		readErr = err
	}
}

func (c *Connection) readFailure(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		c.stats.recordTimeout()
		c.logger.Debug("ssdb: read timeout", "addr", c.addr, "buffered", c.parser.Buffered())
		return &wire.TimeoutError{Op: "read", Err: err}
	}
	return c.fail("read", err)
}

// writeFailure closes the connection: a partially written request leaves the
// stream out of sync, even after a timeout.
func (c *Connection) writeFailure(err error) error {
	return c.fail("write", err)
}

func errClosed() error {
	return &wire.ConnectionError{Op: "send", Err: ErrConnectionClosed}
}

func (c *Connection) fail(op string, err error) error {
	c.stats.recordConnectionError()
	c.logger.Warn("ssdb: connection lost", "addr", c.addr, "op", op, "error", err)
	_ = c.Close()
	return &wire.ConnectionError{Op: op, Err: fmt.Errorf("%w: %w", ErrConnectionLost, err)}
}
