package ssdb

import (
	"fmt"
	"strconv"
)

// argumentAppender is implemented by Map and Pair, which expand into several
// arguments.
type argumentAppender interface {
	appendArgs(dst [][]byte) [][]byte
}

// appendArgs flattens command arguments into wire blocks.
//
// Strings and byte slices are sent as-is, numbers in decimal, booleans as
// "1" or "". Lists (including nested ones), Maps and Pairs are spliced into
// the argument sequence. Anything else goes through fmt.Sprint.
func appendArgs(dst [][]byte, args ...any) [][]byte {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			dst = append(dst, []byte{})
		case []byte:
			dst = append(dst, v)
		case string:
			dst = append(dst, []byte(v))
		case int:
			dst = append(dst, strconv.AppendInt(nil, int64(v), 10))
		case int8:
			dst = append(dst, strconv.AppendInt(nil, int64(v), 10))
		case int16:
			dst = append(dst, strconv.AppendInt(nil, int64(v), 10))
		case int32:
			dst = append(dst, strconv.AppendInt(nil, int64(v), 10))
		case int64:
			dst = append(dst, strconv.AppendInt(nil, v, 10))
		case uint:
			dst = append(dst, strconv.AppendUint(nil, uint64(v), 10))
		case uint8:
			dst = append(dst, strconv.AppendUint(nil, uint64(v), 10))
		case uint16:
			dst = append(dst, strconv.AppendUint(nil, uint64(v), 10))
		case uint32:
			dst = append(dst, strconv.AppendUint(nil, uint64(v), 10))
		case uint64:
			dst = append(dst, strconv.AppendUint(nil, v, 10))
		case float32:
			dst = append(dst, strconv.AppendFloat(nil, float64(v), 'f', -1, 32))
		case float64:
			dst = append(dst, strconv.AppendFloat(nil, v, 'f', -1, 64))
		case bool:
			if v {
				dst = append(dst, []byte("1"))
			} else {
				dst = append(dst, []byte{})
			}
		case []string:
			for _, s := range v {
				dst = append(dst, []byte(s))
			}
		case [][]byte:
			dst = append(dst, v...)
		case []int64:
			for _, n := range v {
				dst = append(dst, strconv.AppendInt(nil, n, 10))
			}
		case []any:
			dst = appendArgs(dst, v...)
		case argumentAppender:
			dst = v.appendArgs(dst)
		case fmt.Stringer:
			dst = append(dst, []byte(v.String()))
		default:
			dst = append(dst, []byte(fmt.Sprint(v)))
		}
	}
	return dst
}
