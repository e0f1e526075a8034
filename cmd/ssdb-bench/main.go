package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pior/ssdb"
)

type OperationType string

const (
	GetHit    OperationType = "get-hit"
	GetMiss   OperationType = "get-miss"
	Set       OperationType = "set"
	Increment OperationType = "incr"
	Batch     OperationType = "batch"
	All       OperationType = "all"
)

type BenchmarkResult struct {
	Operation    OperationType
	Duration     time.Duration
	TotalOps     int64
	Successes    int64
	Failures     int64
	AvgLatency   time.Duration
	OpsPerSecond float64
	Correctness  bool
	ErrorMessage string
}

type benchmark struct {
	servers     *ssdb.Servers
	opts        []ssdb.Option
	duration    time.Duration
	concurrency int
	batchSize   int
}

// worker runs one operation in a loop. It reports how many operations it
// performed and whether they succeeded.
type worker func(ctx context.Context, conn *ssdb.Connection, key string) (ops int64, ok bool)

func main() {
	var (
		operation   = flag.String("operation", "all", "Operation type: get-hit, get-miss, set, incr, batch, or all")
		duration    = flag.Duration("duration", 5*time.Second, "Duration to run benchmarks")
		concurrency = flag.Int("concurrency", 1, "Number of concurrent workers, one connection each")
		servers     = flag.String("servers", "127.0.0.1:8888", "Comma-separated list of SSDB servers")
		password    = flag.String("auth", "", "Password")
		batchSize   = flag.Int("batch-size", 100, "Commands per batch for the batch operation")
		timeout     = flag.Duration("timeout", ssdb.DefaultTimeout, "Request timeout")
	)
	flag.Parse()

	fmt.Printf("SSDB Benchmark Tool\n")
	fmt.Printf("===================\n")
	fmt.Printf("Operation: %s\n", *operation)
	fmt.Printf("Duration: %v\n", *duration)
	fmt.Printf("Concurrency: %d\n", *concurrency)
	fmt.Printf("Servers: %s\n", *servers)
	fmt.Println()

	opts := []ssdb.Option{
		ssdb.WithTimeout(*timeout),
		ssdb.WithLogger(slog.Default()),
		ssdb.WithDialer(&ssdb.Dialer{
			NewCircuitBreaker: ssdb.NewCircuitBreakerConfig(1, 10*time.Second, 5*time.Second),
		}),
	}
	if *password != "" {
		opts = append(opts, ssdb.WithPassword(*password))
	}

	b := &benchmark{
		servers:     ssdb.NewServers(strings.Split(*servers, ",")...),
		opts:        opts,
		duration:    *duration,
		concurrency: *concurrency,
		batchSize:   *batchSize,
	}

	fmt.Print("Testing connection...")
	if err := b.ping(); err != nil {
		fmt.Printf(" failed: %v\n", err)
		fmt.Printf("Make sure ssdb-server is running on %s\n", *servers)
		return
	}
	fmt.Println(" success!")

	operations := []OperationType{GetHit, GetMiss, Set, Increment, Batch}
	if OperationType(*operation) != All {
		operations = []OperationType{OperationType(*operation)}
	}

	for i, op := range operations {
		if i > 0 {
			time.Sleep(500 * time.Millisecond)
		}
		fmt.Printf("\n--- Running %s benchmark ---\n", op)
		printResult(b.run(op))
	}
}

func (b *benchmark) ping() error {
	ctx := context.Background()
	for _, addr := range b.servers.List() {
		conn, err := ssdb.Dial(ctx, addr, b.opts...)
		if err != nil {
			return err
		}
		_, err = conn.Ping(ctx)
		_ = conn.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *benchmark) run(op OperationType) *BenchmarkResult {
	var w worker

	switch op {
	case GetHit:
		w = func(ctx context.Context, conn *ssdb.Connection, key string) (int64, bool) {
			resp, err := conn.Get(ctx, key)
			return 1, err == nil && resp.Str() == "value-"+key
		}
	case GetMiss:
		w = func(ctx context.Context, conn *ssdb.Connection, key string) (int64, bool) {
			resp, err := conn.Get(ctx, key+"-missing")
			return 1, err == nil && resp.NotFound()
		}
	case Set:
		w = func(ctx context.Context, conn *ssdb.Connection, key string) (int64, bool) {
			resp, err := conn.Set(ctx, key, "value-"+key)
			return 1, err == nil && resp.OK()
		}
	case Increment:
		w = func(ctx context.Context, conn *ssdb.Connection, key string) (int64, bool) {
			resp, err := conn.Incr(ctx, key+"-counter", 1)
			return 1, err == nil && resp.OK()
		}
	case Batch:
		w = func(ctx context.Context, conn *ssdb.Connection, key string) (int64, bool) {
			batch := conn.Batch()
			for i := range b.batchSize {
				batch.Do("get", key+"-"+strconv.Itoa(i))
			}
			responses, err := batch.Exec(ctx)
			return int64(len(responses)), err == nil && len(responses) == b.batchSize
		}
	default:
		return &BenchmarkResult{
			Operation:    op,
			ErrorMessage: fmt.Sprintf("Unknown operation: %s", op),
		}
	}

	return b.measure(op, w)
}

func (b *benchmark) measure(op OperationType, w worker) *BenchmarkResult {
	result := &BenchmarkResult{Operation: op, Correctness: true}

	var totalOps, successes, failures, totalLatency int64
	var errMu sync.Mutex

	fail := func(msg string) {
		errMu.Lock()
		defer errMu.Unlock()
		result.Correctness = false
		if result.ErrorMessage == "" {
			result.ErrorMessage = msg
		}
	}

	fmt.Printf("Starting %s benchmark with %d workers for %v...\n", op, b.concurrency, b.duration)

	startTime := time.Now()
	var wg sync.WaitGroup

	for i := range b.concurrency {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			ctx := context.Background()
			key := "bench-" + strconv.Itoa(workerID)

			conn, err := ssdb.DialKey(ctx, b.servers, key, b.opts...)
			if err != nil {
				fail(fmt.Sprintf("worker %d: %v", workerID, err))
				return
			}
			defer conn.Close()

			if _, err := conn.Set(ctx, key, "value-"+key); err != nil {
				fail(fmt.Sprintf("worker %d setup: %v", workerID, err))
				return
			}

			for time.Since(startTime) < b.duration && !conn.Closed() {
				opStart := time.Now()
				n, ok := w(ctx, conn, key)
				atomic.AddInt64(&totalLatency, int64(time.Since(opStart)))
				atomic.AddInt64(&totalOps, n)

				if ok {
					atomic.AddInt64(&successes, n)
				} else {
					atomic.AddInt64(&failures, n)
					if r := conn.LastResponse(); r != nil {
						fail(fmt.Sprintf("unexpected response: %s", r))
					}
				}
			}
		}(i)
	}

	wg.Wait()

	result.Duration = time.Since(startTime)
	result.TotalOps = totalOps
	result.Successes = successes
	result.Failures = failures
	if totalOps > 0 {
		result.AvgLatency = time.Duration(totalLatency / totalOps)
		result.OpsPerSecond = float64(totalOps) / result.Duration.Seconds()
	}
	return result
}

func printResult(result *BenchmarkResult) {
	fmt.Printf("Operation: %s\n", result.Operation)
	if result.ErrorMessage != "" && result.TotalOps == 0 {
		log.Printf("Error: %s", result.ErrorMessage)
		return
	}

	fmt.Printf("Duration: %v\n", result.Duration)
	fmt.Printf("Total operations: %d\n", result.TotalOps)
	fmt.Printf("Successes: %d\n", result.Successes)
	fmt.Printf("Failures: %d\n", result.Failures)
	fmt.Printf("Average latency: %v\n", result.AvgLatency)
	fmt.Printf("Operations per second: %.2f\n", result.OpsPerSecond)

	if result.Correctness {
		fmt.Printf("Correctness: PASS\n")
	} else {
		fmt.Printf("Correctness: FAIL - %s\n", result.ErrorMessage)
	}
}
