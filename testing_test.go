package ssdb

import (
	"net"
	"strconv"
	"sync"
	"testing"

	"github.com/pior/ssdb/wire"
	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal in-process SSDB server over TCP. It keeps plain
// key/value pairs and a single queue per name, and understands enough
// commands to exercise the client end to end.
//
// The "hang" command is read but never answered.
type fakeServer struct {
	listener net.Listener
	password string

	mu     sync.Mutex
	kv     map[string]string
	queues map[string][]string
	conns  map[net.Conn]struct{}

	wg sync.WaitGroup
}

func startFakeServer(t testing.TB, password string) *fakeServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeServer{
		listener: listener,
		password: password,
		kv:       map[string]string{},
		queues:   map[string][]string{},
		conns:    map[net.Conn]struct{}{},
	}

	s.wg.Add(1)
	go s.acceptLoop()

	return s
}

func (s *fakeServer) Addr() string {
	return s.listener.Addr().String()
}

// Close stops the server and waits for every goroutine to return.
func (s *fakeServer) Close() {
	_ = s.listener.Close()

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// DropConnections closes the server side of every open connection.
func (s *fakeServer) DropConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
	}
}

func (s *fakeServer) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *fakeServer) serve(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()

	var parser wire.Parser
	authed := s.password == ""
	buf := make([]byte, 4096)
	var out []byte

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			parser.Feed(buf[:n])
		}

		out = out[:0]
		for {
			req, perr := parser.Next()
			if perr != nil {
				return
			}
			if req == nil {
				break
			}
			if len(req) == 0 {
				continue
			}

			cmd := string(req[0])
			args := make([]string, len(req)-1)
			for i, a := range req[1:] {
				args[i] = string(a)
			}

			if cmd == "hang" {
				continue
			}
			if cmd == "auth" {
				authed = len(args) == 1 && args[0] == s.password
				if authed {
					out = appendReply(out, "ok", "1")
				} else {
					out = appendReply(out, "error", "invalid password")
				}
				continue
			}
			if !authed {
				out = appendReply(out, "noauth", "authentication required")
				continue
			}
			out = s.handle(out, cmd, args)
		}

		if len(out) > 0 {
			if _, werr := conn.Write(out); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *fakeServer) handle(out []byte, cmd string, args []string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case "ping":
		return appendReply(out, "ok")

	case "set":
		if len(args) != 2 {
			return appendReply(out, "client_error", "wrong number of arguments")
		}
		s.kv[args[0]] = args[1]
		return appendReply(out, "ok", "1")

	case "get":
		v, ok := s.kv[args[0]]
		if !ok {
			return appendReply(out, "not_found")
		}
		return appendReply(out, "ok", v)

	case "del":
		delete(s.kv, args[0])
		return appendReply(out, "ok", "1")

	case "exists":
		if _, ok := s.kv[args[0]]; ok {
			return appendReply(out, "ok", "1")
		}
		return appendReply(out, "ok", "0")

	case "incr":
		cur, _ := strconv.ParseInt(s.kv[args[0]], 10, 64)
		delta := int64(1)
		if len(args) > 1 {
			var err error
			if delta, err = strconv.ParseInt(args[1], 10, 64); err != nil {
				return appendReply(out, "error", "value is not an integer or out of range")
			}
		}
		cur += delta
		s.kv[args[0]] = strconv.FormatInt(cur, 10)
		return appendReply(out, "ok", s.kv[args[0]])

	case "multi_get":
		reply := []string{}
		for _, k := range args {
			if v, ok := s.kv[k]; ok {
				reply = append(reply, k, v)
			}
		}
		return appendReply(out, "ok", reply...)

	case "qpush":
		s.queues[args[0]] = append(s.queues[args[0]], args[1:]...)
		return appendReply(out, "ok", strconv.Itoa(len(s.queues[args[0]])))

	case "qpop":
		count := 1
		if len(args) > 1 {
			count, _ = strconv.Atoi(args[1])
		}
		q := s.queues[args[0]]
		if len(q) == 0 {
			return appendReply(out, "not_found")
		}
		count = min(count, len(q))
		s.queues[args[0]] = q[count:]
		return appendReply(out, "ok", q[:count]...)

	default:
		return appendReply(out, "client_error", "Unknown Command: "+cmd)
	}
}

// appendReply encodes a response: the status block followed by the data blocks.
func appendReply(dst []byte, status string, blocks ...string) []byte {
	args := make([][]byte, len(blocks))
	for i, b := range blocks {
		args[i] = []byte(b)
	}
	return wire.AppendRequest(dst, status, args...)
}

// closedAddr returns an address nothing listens on.
func closedAddr(t testing.TB) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}
