package ssdb

import (
	"log/slog"
	"net"
	"strconv"
	"time"
)

const (
	// DefaultTimeout applies to dialing and to every request.
	DefaultTimeout = 2000 * time.Millisecond

	// DefaultReadBufferSize is the largest chunk read from the transport at once.
	DefaultReadBufferSize = 64 * 1024
)

// Config holds the connection target and behaviour.
// It is the flat form of the functional options, convenient for binding to
// flags or configuration files.
type Config struct {
	Host string
	Port int

	// Timeout bounds dialing and each request. Zero disables it.
	Timeout time.Duration

	// Password, when set, is sent with a deferred auth before the first command.
	Password string

	// Easy enables easy mode (see Connection.EnableEasyMode).
	Easy bool
}

// DefaultConfig returns the configuration for a local server.
func DefaultConfig() Config {
	return Config{
		Host:    "127.0.0.1",
		Port:    8888,
		Timeout: DefaultTimeout,
	}
}

// Addr returns the host:port dial address. IPv6 hosts are bracketed.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Options converts the configuration to connection options.
func (c Config) Options() []Option {
	opts := []Option{WithTimeout(c.Timeout)}
	if c.Password != "" {
		opts = append(opts, WithPassword(c.Password))
	}
	if c.Easy {
		opts = append(opts, WithEasyMode())
	}
	return opts
}

type options struct {
	timeout        time.Duration
	logger         *slog.Logger
	easy           bool
	password       *string
	readBufferSize int
	maxBlockSize   int
	dialer         *Dialer
}

func newOptions(opts []Option) options {
	o := options{
		timeout:        DefaultTimeout,
		readBufferSize: DefaultReadBufferSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.readBufferSize <= 0 {
		o.readBufferSize = DefaultReadBufferSize
	}
	return o
}

// Option configures a Connection.
type Option func(*options)

// WithTimeout sets the dial and per-request timeout. Zero disables it; a
// context deadline still applies.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithLogger specifies the logger. slog.Default() is used if none is provided.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEasyMode creates the connection in easy mode.
func WithEasyMode() Option {
	return func(o *options) {
		o.easy = true
	}
}

// WithPassword registers a deferred auth, as Connection.Auth does.
func WithPassword(password string) Option {
	return func(o *options) {
		o.password = &password
	}
}

// WithReadBufferSize sets the size of the transport read buffer.
func WithReadBufferSize(size int) Option {
	return func(o *options) {
		o.readBufferSize = size
	}
}

// WithMaxBlockSize rejects response blocks larger than size bytes with a
// parse error instead of buffering them. Zero means no limit.
func WithMaxBlockSize(size int) Option {
	return func(o *options) {
		o.maxBlockSize = size
	}
}

// WithDialer specifies the Dialer used by Dial. A shared Dialer carries the
// per-address circuit breakers.
func WithDialer(dialer *Dialer) Option {
	return func(o *options) {
		o.dialer = dialer
	}
}
