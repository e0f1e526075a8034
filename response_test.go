package ssdb

import (
	"testing"

	"github.com/pior/ssdb/wire"
	"github.com/stretchr/testify/assert"
)

func TestResponse_Value(t *testing.T) {
	tests := []struct {
		name     string
		resp     *Response
		expected any
	}{
		{"ok string", okResponse("get", "bar"), "bar"},
		{"ok empty string", okResponse("get", ""), ""},
		{"ok false", okResponse("exists", false), false},
		{"ok zero", okResponse("incr", int64(0)), int64(0)},
		{"ok list", okResponse("keys", []string{"a"}), []string{"a"}},
		{"not_found", errorResponse("get", wire.StatusNotFound, ""), nil},
		{"error", errorResponse("set", wire.StatusError, "boom"), false},
		{"fail", errorResponse("set", wire.StatusFail, ""), false},
		{"noauth", errorResponse("get", wire.StatusNoAuth, "authentication required"), false},
		{"invalid", invalidResponse("get"), false},
		{"disconnected", errorResponse("get", wire.StatusDisconnected, "Connection closed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resp.Value())
		})
	}
}

func TestResponse_ValueIsLossy(t *testing.T) {
	// A falsy result and a suppressed error look the same.
	assert.Equal(t, okResponse("exists", false).Value(), errorResponse("exists", wire.StatusError, "x").Value())
}

func TestResponse_Accessors(t *testing.T) {
	assert.Equal(t, int64(5), okResponse("incr", int64(5)).Int())
	assert.Zero(t, okResponse("get", "5").Int())

	assert.Equal(t, 1.5, okResponse("zavg", 1.5).Float())
	assert.Equal(t, "bar", okResponse("get", "bar").Str())
	assert.True(t, okResponse("exists", true).Bool())
	assert.False(t, errorResponse("exists", wire.StatusError, "").Bool())

	assert.Equal(t, []string{"a", "b"}, okResponse("keys", []string{"a", "b"}).List())
	assert.Equal(t, []string{"a"}, okResponse("qpop", "a").List())
	assert.Nil(t, okResponse("incr", int64(1)).List())

	m := Map[string]{{Key: "k", Value: "v"}}
	assert.Equal(t, m, okResponse("multi_get", m).Map())
	assert.Nil(t, okResponse("zscan", Map[int64]{}).Map())

	im := Map[int64]{{Key: "k", Value: 3}}
	assert.Equal(t, im, okResponse("zscan", im).IntMap())

	bm := Map[bool]{{Key: "k", Value: true}}
	assert.Equal(t, bm, okResponse("multi_exists", bm).BoolMap())
}

func TestResponse_OKNotFound(t *testing.T) {
	assert.True(t, okResponse("get", "x").OK())
	assert.False(t, okResponse("get", "x").NotFound())

	nf := errorResponse("get", wire.StatusNotFound, "")
	assert.False(t, nf.OK())
	assert.True(t, nf.NotFound())
}

func TestResponse_String(t *testing.T) {
	assert.Equal(t, "get                     ok bar", okResponse("get", "bar").String())
	assert.Equal(t, "set                  error boom", errorResponse("set", wire.StatusError, "boom").String())
	assert.Equal(t, "get              not_found ", errorResponse("get", wire.StatusNotFound, "").String())
}

func TestMap_Get(t *testing.T) {
	m := Map[int64]{{Key: "a", Value: 1}, {Key: "b", Value: 2}}

	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v)

	v, ok = m.Get("c")
	assert.False(t, ok)
	assert.Zero(t, v)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestMapBuilder(t *testing.T) {
	b := newMapBuilder[string](2)
	b.set("a", "1")
	b.set("b", "2")
	b.set("a", "3")

	assert.Equal(t, Map[string]{{Key: "a", Value: "3"}, {Key: "b", Value: "2"}}, b.m)
}
