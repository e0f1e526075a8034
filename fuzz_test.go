package ssdb

import (
	"context"
	"errors"
	"testing"

	"github.com/pior/ssdb/internal/testutils"
	"github.com/pior/ssdb/wire"
)

// FuzzConnection feeds arbitrary server bytes to a connection. It must never
// panic, and must either return a response, or an error that leaves the
// connection closed unless it was a timeout.
func FuzzConnection(f *testing.F) {
	f.Add("get", "2\nok\n3\nbar\n\n")
	f.Add("multi_get", "2\nok\n1\na\n1\nb\n\n")
	f.Add("zscan", "2\nok\n1\na\n2\n10\n\n")
	f.Add("qpop", "2\nok\n1\na\n1\nb\n\n")
	f.Add("exists", "2\nok\n\n")
	f.Add("get", "9\nnot_found\n\n")
	f.Add("get", "6\nnoauth\n0\n\n\n")
	f.Add("get", "x\n")
	f.Add("get", "2\nok\n99\nshort\n")
	f.Add("info", "\n")

	f.Fuzz(func(t *testing.T, cmd string, data string) {
		mock := testutils.NewConnectionMock(data)
		conn := NewConnection(mock, quiet)

		resp, err := conn.Do(context.Background(), cmd, "k", 2)
		if err != nil {
			if resp != nil {
				t.Fatalf("response %v returned with error %v", resp, err)
			}
			var authErr *AuthError
			if !wire.IsTimeout(err) && !errors.As(err, &authErr) && !conn.Closed() {
				t.Fatalf("connection left open after %v", err)
			}
			return
		}

		if resp.OK() {
			return
		}
		if resp.Data != nil {
			t.Fatalf("data %v set on %s response", resp.Data, resp.Code)
		}
	})
}

// FuzzClassify checks Classify accepts any block-group.
func FuzzClassify(f *testing.F) {
	f.Add("get", "ok", "bar", "", 0)
	f.Add("multi_exists", "ok", "a", "1", 4)
	f.Add("zrange", "ok", "m", "x", 2)
	f.Add("qpop_front", "ok", "a", "b", 3)

	f.Fuzz(func(t *testing.T, cmd, status, b1, b2 string, count int) {
		group := [][]byte{[]byte(status), []byte(b1), []byte(b2)}
		for i := 0; i < count%8; i++ {
			group = append(group, []byte(b1))
		}

		resp := Classify(cmd, [][]byte{[]byte("q"), []byte(b2)}, group)
		if resp == nil {
			t.Fatal("nil response")
		}
		if !resp.OK() && resp.Data != nil {
			t.Fatalf("data %v set on %s response", resp.Data, resp.Code)
		}
	})
}
