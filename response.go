package ssdb

import (
	"fmt"

	"github.com/pior/ssdb/wire"
)

// Response is a classified server reply.
//
// Data is set only when Code is wire.StatusOK; otherwise Message holds the
// error or status text sent by the server. The dynamic type of Data depends
// on the command category:
//
//	CategoryInt     int64
//	CategoryFloat   float64
//	CategoryString  string
//	CategoryPop     string, or []string when more than one item was requested
//	CategoryList    []string
//	CategoryBool    bool
//	CategoryBoolMap Map[bool]
//	CategoryMap     Map[int64] for sorted-set commands, Map[string] otherwise
//	CategoryDefault []string
type Response struct {
	Command string
	Code    wire.Status
	Data    any
	Message string
}

func okResponse(cmd string, data any) *Response {
	return &Response{Command: cmd, Code: wire.StatusOK, Data: data}
}

func errorResponse(cmd string, code wire.Status, message string) *Response {
	return &Response{Command: cmd, Code: code, Message: message}
}

func invalidResponse(cmd string) *Response {
	return errorResponse(cmd, wire.StatusServerError, "Invalid response")
}

// OK reports whether the command succeeded.
func (r *Response) OK() bool {
	return r.Code == wire.StatusOK
}

// NotFound reports whether the server answered not_found.
func (r *Response) NotFound() bool {
	return r.Code == wire.StatusNotFound
}

// Value collapses the response into a plain value, the way easy mode does:
//
//   - not_found yields nil
//   - any other non-ok code yields false, unless Data is a list or a map
//   - ok yields Data unchanged
//
// The mapping is lossy. A legitimate false or zero result cannot be told
// apart from a suppressed error; callers needing the error detail must
// inspect Code and Message instead.
func (r *Response) Value() any {
	if r.NotFound() {
		return nil
	}
	if !r.OK() && !isCollection(r.Data) {
		return false
	}
	return r.Data
}

func isCollection(v any) bool {
	switch v.(type) {
	case []string, Map[string], Map[int64], Map[bool]:
		return true
	default:
		return false
	}
}

func (r *Response) String() string {
	s := r.Message
	if r.OK() {
		s = ""
		if r.Data != nil {
			s = fmt.Sprint(r.Data)
		}
	}
	return fmt.Sprintf("%-13s %12s %s", r.Command, r.Code, s)
}

// Int returns Data as an integer, or 0 when Data is not one.
func (r *Response) Int() int64 {
	v, _ := r.Data.(int64)
	return v
}

// Float returns Data as a float, or 0 when Data is not one.
func (r *Response) Float() float64 {
	v, _ := r.Data.(float64)
	return v
}

// Str returns Data as a string, or "" when Data is not one.
func (r *Response) Str() string {
	v, _ := r.Data.(string)
	return v
}

func (r *Response) Bool() bool {
	v, _ := r.Data.(bool)
	return v
}

// List returns Data as a list. A single popped item is returned as a
// one-element list.
func (r *Response) List() []string {
	switch v := r.Data.(type) {
	case []string:
		return v
	case string:
		return []string{v}
	default:
		return nil
	}
}

func (r *Response) Map() Map[string] {
	v, _ := r.Data.(Map[string])
	return v
}

func (r *Response) IntMap() Map[int64] {
	v, _ := r.Data.(Map[int64])
	return v
}

func (r *Response) BoolMap() Map[bool] {
	v, _ := r.Data.(Map[bool])
	return v
}

// Pair is one entry of a Map. It is also accepted as a command argument,
// encoded as the key followed by the value.
type Pair[V any] struct {
	Key   string
	Value V
}

func (p Pair[V]) appendArgs(dst [][]byte) [][]byte {
	dst = append(dst, []byte(p.Key))
	return appendArgs(dst, p.Value)
}

// Map is an ordered mapping. Entries keep the order in which the server sent
// them. As a command argument it is encoded as k1 v1 k2 v2 ...
type Map[V any] []Pair[V]

// Get returns the value stored under key.
func (m Map[V]) Get(key string) (V, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	var zero V
	return zero, false
}

// Keys returns the keys in order.
func (m Map[V]) Keys() []string {
	keys := make([]string, len(m))
	for i, p := range m {
		keys[i] = p.Key
	}
	return keys
}

func (m Map[V]) appendArgs(dst [][]byte) [][]byte {
	for _, p := range m {
		dst = p.appendArgs(dst)
	}
	return dst
}

// mapBuilder builds a Map from consecutive key/value blocks. A repeated key
// overwrites the earlier value in place.
type mapBuilder[V any] struct {
	m     Map[V]
	index map[string]int
}

func newMapBuilder[V any](size int) *mapBuilder[V] {
	return &mapBuilder[V]{
		m:     make(Map[V], 0, size),
		index: make(map[string]int, size),
	}
}

func (b *mapBuilder[V]) set(key string, value V) {
	if i, ok := b.index[key]; ok {
		b.m[i].Value = value
		return
	}
	b.index[key] = len(b.m)
	b.m = append(b.m, Pair[V]{Key: key, Value: value})
}
