package ssdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/pior/ssdb/wire"
)

var (
	// ErrConnectionLost is wrapped by every error that ended the connection.
	ErrConnectionLost = errors.New("ssdb: connection lost")

	// ErrConnectionClosed is returned when a closed connection is used.
	ErrConnectionClosed = fmt.Errorf("ssdb: connection closed: %w", ErrConnectionLost)

	// ErrBatchOpen is returned by Connection.Do while a batch is being built.
	ErrBatchOpen = errors.New("ssdb: batch in progress, queue commands on the batch")
)

// AuthError reports a rejected or missing authentication: either the server
// answered noauth, or a deferred auth did not succeed.
type AuthError struct {
	Message  string
	Response *Response // the noauth or auth response, nil if none was read
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "ssdb: authentication failed"
	}
	return "ssdb: authentication failed: " + e.Message
}

// isFatal reports whether err must reach the caller even in easy mode:
// failures that closed the connection, timeouts and cancellation.
func isFatal(err error) bool {
	var (
		connErr    *wire.ConnectionError
		parseErr   *wire.ParseError
		timeoutErr *wire.TimeoutError
	)
	switch {
	case errors.As(err, &connErr), errors.As(err, &parseErr), errors.As(err, &timeoutErr):
		return true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true
	default:
		return false
	}
}
