package ssdb

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pior/ssdb/wire"
)

// Classify turns the block-group received for cmd into a Response.
//
// args are the flattened request arguments; only the pop commands look at
// them (the item count is argument 1). A nil group means nothing was read and
// yields an error response, an empty group yields a disconnected response.
//
// For a non-ok code, Message is block 1. Commands without a registered
// category have no known error shape, so every payload block is kept and
// joined with spaces.
//
// Classify never fails: blocks that do not match the shape expected for the
// command produce a server_error response with message "Invalid response".
func Classify(cmd string, args [][]byte, group [][]byte) *Response {
	if group == nil {
		return errorResponse(cmd, wire.StatusError, "Unknown error")
	}
	if len(group) == 0 {
		return errorResponse(cmd, wire.StatusDisconnected, "Connection closed")
	}

	category := CategoryOf(cmd)

	code := wire.Status(group[0])
	if code != wire.StatusOK {
		if category == CategoryDefault {
			return errorResponse(cmd, code, strings.Join(payload(group), " "))
		}
		return errorResponse(cmd, code, blockString(group, 1))
	}

	switch category {
	case CategoryInt:
		return okResponse(cmd, parseInt(blockString(group, 1)))

	case CategoryFloat:
		return okResponse(cmd, parseFloat(blockString(group, 1)))

	case CategoryString:
		return classifyString(cmd, group)

	case CategoryPop:
		count := int64(1)
		if len(args) > 1 {
			count = parseInt(string(args[1]))
		}
		if count <= 1 {
			return classifyString(cmd, group)
		}
		return okResponse(cmd, payload(group))

	case CategoryList:
		return okResponse(cmd, payload(group))

	case CategoryBool:
		if len(group) != 2 {
			return invalidResponse(cmd)
		}
		return okResponse(cmd, truthy(string(group[1])))

	case CategoryBoolMap:
		if len(group)%2 != 1 {
			return invalidResponse(cmd)
		}
		b := newMapBuilder[bool](len(group) / 2)
		for i := 1; i < len(group); i += 2 {
			b.set(string(group[i]), truthy(string(group[i+1])))
		}
		return okResponse(cmd, b.m)

	case CategoryMap:
		if len(group)%2 != 1 {
			return invalidResponse(cmd)
		}
		if isSortedSetCommand(cmd) {
			b := newMapBuilder[int64](len(group) / 2)
			for i := 1; i < len(group); i += 2 {
				b.set(string(group[i]), parseInt(string(group[i+1])))
			}
			return okResponse(cmd, b.m)
		}
		b := newMapBuilder[string](len(group) / 2)
		for i := 1; i < len(group); i += 2 {
			b.set(string(group[i]), string(group[i+1]))
		}
		return okResponse(cmd, b.m)

	default:
		return okResponse(cmd, payload(group))
	}
}

func classifyString(cmd string, group [][]byte) *Response {
	if len(group) != 2 {
		return invalidResponse(cmd)
	}
	return okResponse(cmd, string(group[1]))
}

func isSortedSetCommand(cmd string) bool {
	return len(cmd) > 0 && (cmd[0] == sortedSetPrefix || cmd[0] == sortedSetPrefix-'a'+'A')
}

func blockString(group [][]byte, i int) string {
	if i < len(group) {
		return string(group[i])
	}
	return ""
}

// payload returns the blocks after the status, never nil.
func payload(group [][]byte) []string {
	out := make([]string, 0, len(group)-1)
	for _, b := range group[1:] {
		out = append(out, string(b))
	}
	return out
}

// truthy: the empty string and "0" are false, anything else is true.
func truthy(s string) bool {
	return s != "" && s != "0"
}

// parseInt parses the leading integer of s, ignoring surrounding whitespace
// and trailing garbage. It returns 0 when s has no leading digits and
// saturates on overflow.
func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}

// parseFloat parses the longest leading float of s, 0 when there is none.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		f, err := strconv.ParseFloat(s[:end], 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return f
		}
	}
	return 0
}
