// Package promstats exposes SSDB connection statistics as Prometheus metrics.
//
//	collector := promstats.NewCollector("myapp")
//	collector.Add(conn.Addr(), conn)
//	registry.MustRegister(collector)
//
// Statistics are read at scrape time, from whatever goroutine the registry
// gathers on. Connection.Stats is safe to call concurrently with requests.
package promstats

import (
	"sync"

	"github.com/pior/ssdb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"
)

// StatsSource is anything reporting connection statistics. *ssdb.Connection
// implements it.
type StatsSource interface {
	Stats() ssdb.Stats
}

type counter struct {
	desc  *prometheus.Desc
	value func(ssdb.Stats) uint64
}

// Collector is a prometheus.Collector over a set of named stats sources.
// Sources sharing a server label are summed.
type Collector struct {
	counters     []counter
	breakerState *prometheus.Desc

	mu      sync.Mutex
	sources map[StatsSource]string
	dialers map[*ssdb.Dialer][]string
}

// NewCollector creates a collector. Metric names are prefixed with
// namespace_ssdb_, or ssdb_ when namespace is empty.
func NewCollector(namespace string) *Collector {
	newCounter := func(name, help string, value func(ssdb.Stats) uint64) counter {
		return counter{
			desc: prometheus.NewDesc(
				prometheus.BuildFQName(namespace, "ssdb", name),
				help,
				[]string{"server"},
				nil,
			),
			value: value,
		}
	}

	return &Collector{
		counters: []counter{
			newCounter("requests_total", "Requests sent, batched or not.",
				func(s ssdb.Stats) uint64 { return s.Requests }),
			newCounter("batches_total", "Batches flushed.",
				func(s ssdb.Stats) uint64 { return s.Batches }),
			newCounter("batched_requests_total", "Requests sent as part of a batch.",
				func(s ssdb.Stats) uint64 { return s.BatchedRequests }),
			newCounter("response_errors_total", "Responses with a code other than ok or not_found.",
				func(s ssdb.Stats) uint64 { return s.Errors }),
			newCounter("not_found_total", "Responses with code not_found.",
				func(s ssdb.Stats) uint64 { return s.NotFound }),
			newCounter("timeouts_total", "Reads that hit the deadline.",
				func(s ssdb.Stats) uint64 { return s.Timeouts }),
			newCounter("connection_errors_total", "Transport or parse failures that closed a connection.",
				func(s ssdb.Stats) uint64 { return s.ConnectionErrors }),
			newCounter("written_bytes_total", "Bytes written to servers.",
				func(s ssdb.Stats) uint64 { return s.BytesWritten }),
			newCounter("read_bytes_total", "Bytes read from servers.",
				func(s ssdb.Stats) uint64 { return s.BytesRead }),
		},
		breakerState: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "ssdb", "circuit_breaker_state"),
			"Dial circuit breaker state (0=closed, 1=half-open, 2=open).",
			[]string{"server"},
			nil,
		),
		sources: map[StatsSource]string{},
		dialers: map[*ssdb.Dialer][]string{},
	}
}

// Add starts reporting source under the server label.
func (c *Collector) Add(server string, source StatsSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[source] = server
}

// Remove stops reporting source. Its counts disappear from the next scrape.
func (c *Collector) Remove(source StatsSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, source)
}

// AddDialer reports the circuit breaker state of dialer for each address.
func (c *Collector) AddDialer(dialer *ssdb.Dialer, addrs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialers[dialer] = append(c.dialers[dialer], addrs...)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.counters {
		ch <- m.desc
	}
	ch <- c.breakerState
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	totals := make(map[string][]uint64, len(c.sources))
	for source, server := range c.sources {
		stats := source.Stats()
		sums, ok := totals[server]
		if !ok {
			sums = make([]uint64, len(c.counters))
			totals[server] = sums
		}
		for i, m := range c.counters {
			sums[i] += m.value(stats)
		}
	}

	states := map[string]gobreaker.State{}
	for dialer, addrs := range c.dialers {
		for _, addr := range addrs {
			states[addr] = dialer.CircuitBreakerState(addr)
		}
	}
	c.mu.Unlock()

	for server, sums := range totals {
		for i, m := range c.counters {
			ch <- prometheus.MustNewConstMetric(m.desc, prometheus.CounterValue, float64(sums[i]), server)
		}
	}
	for addr, state := range states {
		ch <- prometheus.MustNewConstMetric(c.breakerState, prometheus.GaugeValue, float64(state), addr)
	}
}
