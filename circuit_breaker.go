package ssdb

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// NewCircuitBreakerConfig returns a function that creates circuit breakers for servers.
// This is a helper for common use cases: the breaker opens once at least 3
// dials were attempted in the interval and 60% of them failed.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(string) *gobreaker.CircuitBreaker[net.Conn] {
	return func(serverAddr string) *gobreaker.CircuitBreaker[net.Conn] {
		settings := gobreaker.Settings{
			Name:        serverAddr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}
		return gobreaker.NewCircuitBreaker[net.Conn](settings)
	}
}

// Dialer opens transports to SSDB servers.
//
// With NewCircuitBreaker set, dials to an address that keeps failing are
// rejected with gobreaker.ErrOpenState until the breaker half-opens, instead
// of each caller waiting for its own connect timeout. Only dialing is guarded:
// a connection, once open, is never retried or re-established.
//
// A Dialer is safe for concurrent use and is meant to be shared.
type Dialer struct {
	// NetDialer is used to open TCP connections. If nil, a zero net.Dialer is used.
	NetDialer *net.Dialer

	// NewCircuitBreaker creates the breaker for a server address, on the
	// first dial to that address. If nil, no circuit breaker is used.
	NewCircuitBreaker func(serverAddr string) *gobreaker.CircuitBreaker[net.Conn]

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[net.Conn]
}

// DialContext connects to addr over TCP.
func (d *Dialer) DialContext(ctx context.Context, addr string) (net.Conn, error) {
	cb := d.breaker(addr)
	if cb == nil {
		return d.dial(ctx, addr)
	}

	return cb.Execute(func() (net.Conn, error) {
		return d.dial(ctx, addr)
	})
}

func (d *Dialer) dial(ctx context.Context, addr string) (net.Conn, error) {
	netDialer := d.NetDialer
	if netDialer == nil {
		netDialer = &net.Dialer{}
	}
	return netDialer.DialContext(ctx, "tcp", addr)
}

func (d *Dialer) breaker(addr string) *gobreaker.CircuitBreaker[net.Conn] {
	if d.NewCircuitBreaker == nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if cb, ok := d.breakers[addr]; ok {
		return cb
	}
	if d.breakers == nil {
		d.breakers = make(map[string]*gobreaker.CircuitBreaker[net.Conn])
	}
	cb := d.NewCircuitBreaker(addr)
	d.breakers[addr] = cb
	return cb
}

// CircuitBreakerState returns the breaker state for addr.
// Addresses never dialed, or a Dialer without breakers, report StateClosed.
func (d *Dialer) CircuitBreakerState(addr string) gobreaker.State {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cb, ok := d.breakers[addr]; ok {
		return cb.State()
	}
	return gobreaker.StateClosed
}
