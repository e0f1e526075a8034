package ssdb

import (
	"context"
	"strings"

	"github.com/pior/ssdb/wire"
)

type invocation struct {
	cmd  string
	args [][]byte
}

// Batch pipelines commands over its connection: Exec writes every queued
// request, then reads the responses in submission order.
//
//	b := conn.Batch()
//	b.Do("set", "a", 1).Do("incr", "a", 5).Do("get", "a")
//	responses, err := b.Exec(ctx)
//
// While a batch is open, Connection.Do returns ErrBatchOpen. Exec, Flush and
// Discard close the batch and return the connection to immediate mode.
type Batch struct {
	conn  *Connection
	queue []invocation
}

// Batch opens a batch on the connection. An open batch is discarded, along
// with its queued commands.
func (c *Connection) Batch() *Batch {
	c.batch = &Batch{conn: c}
	return c.batch
}

// Multi is an alias for Batch.
func (c *Connection) Multi() *Batch {
	return c.Batch()
}

// Do queues a command. Nothing is sent until Exec or Flush.
func (b *Batch) Do(cmd string, args ...any) *Batch {
	b.queue = append(b.queue, invocation{
		cmd:  strings.ToLower(cmd),
		args: appendArgs(nil, args...),
	})
	return b
}

// Len returns the number of queued commands.
func (b *Batch) Len() int {
	return len(b.queue)
}

// Discard drops the queued commands and closes the batch without sending.
func (b *Batch) Discard() {
	b.queue = nil
	b.release()
}

func (b *Batch) release() {
	if b.conn.batch == b {
		b.conn.batch = nil
	}
}

// Exec sends the queued commands and returns one response per command, in
// the order they were queued.
//
// Server-side failures of individual commands are reported in their
// responses and do not stop the batch; noauth responses are returned as-is.
// A transport failure, timeout or malformed response aborts the remaining
// reads: the responses decoded so far are returned along with the error.
//
// The batch is closed whether or not Exec succeeds.
func (b *Batch) Exec(ctx context.Context) ([]*Response, error) {
	queue := b.queue
	b.queue = nil
	b.release()

	c := b.conn
	if c.closed {
		return nil, errClosed()
	}
	if len(queue) == 0 {
		return []*Response{}, nil
	}

	if err := c.applyDeferredAuth(ctx, queue[0].cmd); err != nil {
		return nil, err
	}
	if err := c.begin(ctx); err != nil {
		return nil, err
	}

	c.writeBuf = c.writeBuf[:0]
	for _, inv := range queue {
		c.writeBuf = wire.AppendRequest(c.writeBuf, inv.cmd, inv.args...)
	}

	c.logger.Debug("ssdb: batch", "commands", len(queue), "bytes", len(c.writeBuf))

	n, err := wire.WriteFull(c.transport, c.writeBuf)
	c.stats.recordWritten(n)
	if err != nil {
		return nil, c.writeFailure(err)
	}
	c.stats.recordRequests(len(queue))
	c.stats.recordBatch(len(queue))

	responses := make([]*Response, 0, len(queue))
	for _, inv := range queue {
		resp, err := c.receive(inv.cmd, inv.args)
		if err != nil {
			return responses, err
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// Flush is the mode-aware form of Exec: in easy mode each element is the
// plain value from Response.Value, otherwise the *Response.
func (b *Batch) Flush(ctx context.Context) ([]any, error) {
	responses, err := b.Exec(ctx)

	values := make([]any, len(responses))
	for i, resp := range responses {
		values[i] = b.conn.shape(resp)
	}
	return values, err
}
