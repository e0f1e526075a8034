package ssdb

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingExecutor records the wire form of each command instead of sending it.
type recordingExecutor struct {
	requests []string
}

func (e *recordingExecutor) Do(ctx context.Context, cmd string, args ...any) (*Response, error) {
	parts := []string{cmd}
	for _, a := range appendArgs(nil, args...) {
		parts = append(parts, string(a))
	}
	e.requests = append(e.requests, strings.Join(parts, " "))
	return okResponse(cmd, nil), nil
}

func TestCommands_WireOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func(c *Commands) (*Response, error)
		expected string
	}{
		{"ping", func(c *Commands) (*Response, error) { return c.Ping(ctx) }, "ping"},
		{"dbsize", func(c *Commands) (*Response, error) { return c.DBSize(ctx) }, "dbsize"},
		{"set", func(c *Commands) (*Response, error) { return c.Set(ctx, "k", "v") }, "set k v"},
		{"set int", func(c *Commands) (*Response, error) { return c.Set(ctx, "k", 42) }, "set k 42"},
		{"setx", func(c *Commands) (*Response, error) { return c.Setx(ctx, "k", "v", 90*time.Second) }, "setx k v 90"},
		{"get", func(c *Commands) (*Response, error) { return c.Get(ctx, "k") }, "get k"},
		{"del", func(c *Commands) (*Response, error) { return c.Del(ctx, "k") }, "del k"},
		{"exists", func(c *Commands) (*Response, error) { return c.Exists(ctx, "k") }, "exists k"},
		{"ttl", func(c *Commands) (*Response, error) { return c.TTL(ctx, "k") }, "ttl k"},
		{"expire", func(c *Commands) (*Response, error) { return c.Expire(ctx, "k", time.Minute) }, "expire k 60"},
		{"incr", func(c *Commands) (*Response, error) { return c.Incr(ctx, "n", 1) }, "incr n 1"},
		{"incr default", func(c *Commands) (*Response, error) { return c.Incr(ctx, "n") }, "incr n"},
		{"incr zero", func(c *Commands) (*Response, error) { return c.Incr(ctx, "n", 0) }, "incr n 0"},
		{"decr", func(c *Commands) (*Response, error) { return c.Decr(ctx, "n", 3) }, "decr n 3"},
		{
			"multi_set",
			func(c *Commands) (*Response, error) {
				return c.MultiSet(ctx, Pair[string]{"a", "1"}, Pair[string]{"b", "2"})
			},
			"multi_set a 1 b 2",
		},
		{"multi_get", func(c *Commands) (*Response, error) { return c.MultiGet(ctx, "a", "b") }, "multi_get a b"},
		{"multi_del", func(c *Commands) (*Response, error) { return c.MultiDel(ctx, "a", "b") }, "multi_del a b"},
		{"multi_exists", func(c *Commands) (*Response, error) { return c.MultiExists(ctx, "a") }, "multi_exists a"},
		{"scan", func(c *Commands) (*Response, error) { return c.Scan(ctx, "a", "z", 10) }, "scan a z 10"},
		{"keys", func(c *Commands) (*Response, error) { return c.Keys(ctx, "", "", 5) }, "keys   5"},
		{"hset", func(c *Commands) (*Response, error) { return c.HSet(ctx, "h", "f", "v") }, "hset h f v"},
		{"hget", func(c *Commands) (*Response, error) { return c.HGet(ctx, "h", "f") }, "hget h f"},
		{"hdel", func(c *Commands) (*Response, error) { return c.HDel(ctx, "h", "f") }, "hdel h f"},
		{"hincr", func(c *Commands) (*Response, error) { return c.HIncr(ctx, "h", "f", 2) }, "hincr h f 2"},
		{"hincr default", func(c *Commands) (*Response, error) { return c.HIncr(ctx, "h", "f") }, "hincr h f"},
		{"hdecr", func(c *Commands) (*Response, error) { return c.HDecr(ctx, "h", "f", 2) }, "hdecr h f 2"},
		{"hgetall", func(c *Commands) (*Response, error) { return c.HGetAll(ctx, "h") }, "hgetall h"},
		{
			"multi_hset",
			func(c *Commands) (*Response, error) {
				return c.MultiHSet(ctx, "h", Pair[string]{"f1", "v1"}, Pair[string]{"f2", "v2"})
			},
			"multi_hset h f1 v1 f2 v2",
		},
		{"zset", func(c *Commands) (*Response, error) { return c.ZSet(ctx, "z", "m", 10) }, "zset z m 10"},
		{"zadd", func(c *Commands) (*Response, error) { return c.ZAdd(ctx, "z", 10, "m") }, "zset z m 10"},
		{"zget", func(c *Commands) (*Response, error) { return c.ZGet(ctx, "z", "m") }, "zget z m"},
		{"zincr", func(c *Commands) (*Response, error) { return c.ZIncr(ctx, "z", "m", -1) }, "zincr z m -1"},
		{"zincr default", func(c *Commands) (*Response, error) { return c.ZIncr(ctx, "z", "m") }, "zincr z m"},
		{"zdecr", func(c *Commands) (*Response, error) { return c.ZDecr(ctx, "z", "m", 1) }, "zdecr z m 1"},
		{"zrank", func(c *Commands) (*Response, error) { return c.ZRank(ctx, "z", "m") }, "zrank z m"},
		{"zrrank", func(c *Commands) (*Response, error) { return c.ZRevRank(ctx, "z", "m") }, "zrrank z m"},
		{"zrange", func(c *Commands) (*Response, error) { return c.ZRange(ctx, "z", 0, 10) }, "zrange z 0 10"},
		{"zrrange", func(c *Commands) (*Response, error) { return c.ZRevRange(ctx, "z", 0, 10) }, "zrrange z 0 10"},
		{
			"multi_zset",
			func(c *Commands) (*Response, error) {
				return c.MultiZSet(ctx, "z", Pair[int64]{"a", 1}, Pair[int64]{"b", -2})
			},
			"multi_zset z a 1 b -2",
		},
		{"qpush", func(c *Commands) (*Response, error) { return c.QPush(ctx, "q", "a", "b") }, "qpush q a b"},
		{"qpop", func(c *Commands) (*Response, error) { return c.QPop(ctx, "q", 2) }, "qpop q 2"},
		{"qsize", func(c *Commands) (*Response, error) { return c.QSize(ctx, "q") }, "qsize q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := &recordingExecutor{}
			_, err := tt.call(NewCommands(executor))
			require.NoError(t, err)
			require.Len(t, executor.requests, 1)
			assert.Equal(t, tt.expected, executor.requests[0])
		})
	}
}

func TestCommands_OnConnection(t *testing.T) {
	conn, mock := newTestConnection(t,
		"2\nok\n1\n1\n\n",
		"2\nok\n1\n3\n\n",
		"2\nok\n1\nb\n1\nc\n\n",
	)
	ctx := context.Background()

	resp, err := conn.ZAdd(ctx, "z", 3, "m")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Int())

	resp, err = conn.QPush(ctx, "q", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Int())

	resp, err = conn.QPop(ctx, "q", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, resp.List())

	assert.Equal(t,
		"4\nzset\n1\nz\n1\nm\n1\n3\n\n"+
			"5\nqpush\n1\nq\n1\na\n1\nb\n1\nc\n\n"+
			"4\nqpop\n1\nq\n1\n2\n\n",
		mock.Written())
}
