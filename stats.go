package ssdb

import (
	"sync/atomic"

	"github.com/pior/ssdb/wire"
)

// Stats contains statistics about a connection.
// Snapshots are safe to take from another goroutine while the connection is
// in use, for example by a metrics scraper.
//
// For Prometheus integration, see the promstats package, which exposes
// every field as a counter.
type Stats struct {
	Requests         uint64 // Requests sent, batched or not, deferred auth included
	Batches          uint64 // Batches flushed
	BatchedRequests  uint64 // Requests sent as part of a batch
	Errors           uint64 // Responses with a code other than ok or not_found
	NotFound         uint64 // Responses with code not_found
	Timeouts         uint64 // Reads that hit the deadline
	ConnectionErrors uint64 // Transport or parse failures that closed the connection
	BytesWritten     uint64
	BytesRead        uint64
}

// statsCollector provides internal methods for updating connection stats.
// Not exported - the connection updates its own stats.
type statsCollector struct {
	stats Stats
}

func newStatsCollector() *statsCollector {
	return &statsCollector{}
}

func (c *statsCollector) recordRequests(n int) {
	atomic.AddUint64(&c.stats.Requests, uint64(n))
}

func (c *statsCollector) recordBatch(n int) {
	atomic.AddUint64(&c.stats.Batches, 1)
	atomic.AddUint64(&c.stats.BatchedRequests, uint64(n))
}

func (c *statsCollector) recordResponse(resp *Response) {
	switch resp.Code {
	case wire.StatusOK:
	case wire.StatusNotFound:
		atomic.AddUint64(&c.stats.NotFound, 1)
	default:
		atomic.AddUint64(&c.stats.Errors, 1)
	}
}

func (c *statsCollector) recordTimeout() {
	atomic.AddUint64(&c.stats.Timeouts, 1)
}

func (c *statsCollector) recordConnectionError() {
	atomic.AddUint64(&c.stats.ConnectionErrors, 1)
}

func (c *statsCollector) recordWritten(n int) {
	atomic.AddUint64(&c.stats.BytesWritten, uint64(n))
}

func (c *statsCollector) recordRead(n int) {
	atomic.AddUint64(&c.stats.BytesRead, uint64(n))
}

func (c *statsCollector) snapshot() Stats {
	return Stats{
		Requests:         atomic.LoadUint64(&c.stats.Requests),
		Batches:          atomic.LoadUint64(&c.stats.Batches),
		BatchedRequests:  atomic.LoadUint64(&c.stats.BatchedRequests),
		Errors:           atomic.LoadUint64(&c.stats.Errors),
		NotFound:         atomic.LoadUint64(&c.stats.NotFound),
		Timeouts:         atomic.LoadUint64(&c.stats.Timeouts),
		ConnectionErrors: atomic.LoadUint64(&c.stats.ConnectionErrors),
		BytesWritten:     atomic.LoadUint64(&c.stats.BytesWritten),
		BytesRead:        atomic.LoadUint64(&c.stats.BytesRead),
	}
}
