package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pior/ssdb"
	"github.com/pior/ssdb/promstats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	config := ssdb.DefaultConfig()

	flag.StringVar(&config.Host, "host", config.Host, "server host")
	flag.IntVar(&config.Port, "port", config.Port, "server port")
	flag.DurationVar(&config.Timeout, "timeout", config.Timeout, "dial and request timeout")
	flag.StringVar(&config.Password, "auth", "", "password, sent before the first command")
	flag.BoolVar(&config.Easy, "easy", false, "print plain values instead of full responses")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address (e.g. :9100)")
	debug := flag.Bool("debug", false, "log every request and response")
	flag.Parse()

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	dialer := &ssdb.Dialer{
		NewCircuitBreaker: ssdb.NewCircuitBreakerConfig(1, 10*time.Second, 5*time.Second),
	}

	conn, err := ssdb.DialConfig(context.Background(), config, ssdb.WithLogger(logger), ssdb.WithDialer(dialer))
	if err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	if *metricsAddr != "" {
		serveMetrics(*metricsAddr, conn, dialer, logger)
	}

	if len(flag.Args()) > 0 {
		os.Exit(run(conn, flag.Args()))
	}

	repl(conn)
}

func serveMetrics(addr string, conn *ssdb.Connection, dialer *ssdb.Dialer, logger *slog.Logger) {
	collector := promstats.NewCollector("")
	collector.Add(conn.Addr(), conn)
	collector.AddDialer(dialer, conn.Addr())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server stopped", "addr", addr, "error", err)
		}
	}()
}

// run executes a single command given on the command line.
func run(conn *ssdb.Connection, args []string) int {
	v, err := conn.Call(context.Background(), args[0], toAny(args[1:])...)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	printValue(v)
	return 0
}

func repl(conn *ssdb.Connection) {
	fmt.Printf("SSDB CLI, connected to %s\n", conn.Addr())
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	var batch *ssdb.Batch

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for {
		if batch != nil {
			fmt.Printf("batch(%d)> ", batch.Len())
		} else {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		command := strings.ToLower(parts[0])
		ctx := context.Background()

		switch command {
		case "help":
			printHelp()

		case "quit", "exit":
			return

		case "stats":
			fmt.Printf("%+v\n", conn.Stats())

		case "batch", "multi":
			batch = conn.Batch()

		case "discard":
			if batch != nil {
				batch.Discard()
				batch = nil
			}

		case "exec":
			if batch == nil {
				fmt.Println("No batch in progress")
				continue
			}
			start := time.Now()
			values, err := batch.Flush(ctx)
			batch = nil
			for _, v := range values {
				printValue(v)
			}
			if err != nil {
				printError(err)
			}
			fmt.Printf("(%d responses, took %v)\n", len(values), time.Since(start))

		default:
			if batch != nil {
				batch.Do(command, toAny(parts[1:])...)
				continue
			}

			start := time.Now()
			v, err := conn.Call(ctx, command, toAny(parts[1:])...)
			if err != nil {
				printError(err)
				if conn.Closed() {
					return
				}
				continue
			}
			printValue(v)
			fmt.Printf("(took %v)\n", time.Since(start))
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Printf("Error reading input: %v\n", err)
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  <command> [args...]   - Send any SSDB command (e.g. set k v, get k, zscan z '' '' '' 10)")
	fmt.Println("  batch                 - Start queueing commands")
	fmt.Println("  exec                  - Send the queued commands and print the responses")
	fmt.Println("  discard               - Drop the queued commands")
	fmt.Println("  stats                 - Show connection statistics")
	fmt.Println("  quit                  - Exit the CLI")
}

func printValue(v any) {
	switch v := v.(type) {
	case *ssdb.Response:
		fmt.Println(v.String())
	case nil:
		fmt.Println("(nil)")
	case ssdb.Map[string]:
		for _, p := range v {
			fmt.Printf("  %-20s : %s\n", p.Key, p.Value)
		}
	case ssdb.Map[int64]:
		for _, p := range v {
			fmt.Printf("  %-20s : %d\n", p.Key, p.Value)
		}
	case []string:
		for i, s := range v {
			fmt.Printf("  %d) %s\n", i+1, s)
		}
	default:
		fmt.Printf("%v\n", v)
	}
}

func printError(err error) {
	var authErr *ssdb.AuthError
	switch {
	case errors.As(err, &authErr):
		fmt.Printf("Auth error: %s\n", authErr.Message)
	case errors.Is(err, ssdb.ErrConnectionLost):
		fmt.Printf("Connection lost: %v\n", err)
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

// toAny unquotes '' to an empty argument.
func toAny(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if a == "''" || a == `""` {
			a = ""
		}
		out[i] = a
	}
	return out
}
