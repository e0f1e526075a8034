package promstats

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pior/ssdb"
	"github.com/pior/ssdb/internal/testutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource ssdb.Stats

func (s staticSource) Stats() ssdb.Stats {
	return ssdb.Stats(s)
}

func TestCollector_Counters(t *testing.T) {
	c := NewCollector("test")
	c.Add("a:8888", &staticSource{Requests: 5, NotFound: 1})
	c.Add("a:8888", &staticSource{Requests: 2, Timeouts: 3})
	c.Add("b:8888", &staticSource{Requests: 7})

	expected := `
# HELP test_ssdb_requests_total Requests sent, batched or not.
# TYPE test_ssdb_requests_total counter
test_ssdb_requests_total{server="a:8888"} 7
test_ssdb_requests_total{server="b:8888"} 7
# HELP test_ssdb_timeouts_total Reads that hit the deadline.
# TYPE test_ssdb_timeouts_total counter
test_ssdb_timeouts_total{server="a:8888"} 3
test_ssdb_timeouts_total{server="b:8888"} 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"test_ssdb_requests_total", "test_ssdb_timeouts_total")
	require.NoError(t, err)

	assert.Equal(t, 18, testutil.CollectAndCount(c))
}

func TestCollector_Remove(t *testing.T) {
	c := NewCollector("")
	source := &staticSource{Requests: 1}

	c.Add("a:8888", source)
	assert.Equal(t, 9, testutil.CollectAndCount(c, "ssdb_requests_total", "ssdb_batches_total",
		"ssdb_batched_requests_total", "ssdb_response_errors_total", "ssdb_not_found_total",
		"ssdb_timeouts_total", "ssdb_connection_errors_total", "ssdb_written_bytes_total",
		"ssdb_read_bytes_total"))

	c.Remove(source)
	assert.Zero(t, testutil.CollectAndCount(c))
}

func TestCollector_Connection(t *testing.T) {
	mock := testutils.NewConnectionMock("2\nok\n1\n1\n\n", "9\nnot_found\n\n")
	conn := ssdb.NewConnection(mock, ssdb.WithLogger(slog.New(slog.DiscardHandler)))

	c := NewCollector("")
	c.Add("local", conn)

	registry := prometheus.NewRegistry()
	registry.MustRegister(c)

	_, err := conn.Set(context.Background(), "k", "v")
	require.NoError(t, err)
	_, err = conn.Get(context.Background(), "k")
	require.NoError(t, err)

	expected := `
# HELP ssdb_not_found_total Responses with code not_found.
# TYPE ssdb_not_found_total counter
ssdb_not_found_total{server="local"} 1
# HELP ssdb_requests_total Requests sent, batched or not.
# TYPE ssdb_requests_total counter
ssdb_requests_total{server="local"} 2
`
	err = testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"ssdb_requests_total", "ssdb_not_found_total")
	require.NoError(t, err)
}

func TestCollector_CircuitBreakerState(t *testing.T) {
	dialer := &ssdb.Dialer{
		NewCircuitBreaker: ssdb.NewCircuitBreakerConfig(1, time.Minute, time.Minute),
	}

	c := NewCollector("")
	c.AddDialer(dialer, "127.0.0.1:1")

	expected := `
# HELP ssdb_circuit_breaker_state Dial circuit breaker state (0=closed, 1=half-open, 2=open).
# TYPE ssdb_circuit_breaker_state gauge
ssdb_circuit_breaker_state{server="127.0.0.1:1"} 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected), "ssdb_circuit_breaker_state")
	require.NoError(t, err)
}
