package wire

import (
	"io"
	"strconv"

	"github.com/pior/ssdb/internal"
)

// Typical request is a command and a couple of short arguments.
var bufferPool = internal.NewBufferPool(256)

// AppendRequest appends the wire encoding of one request to dst and returns
// the extended slice.
//
// Format: for the command and then each argument, <len>\n<bytes>\n; the
// request ends with an extra \n. Lengths count raw bytes, nothing is escaped.
//
//	AppendRequest(nil, "set", []byte("foo"), []byte("bar"))
//	// "3\nset\n3\nfoo\n3\nbar\n\n"
func AppendRequest(dst []byte, cmd string, args ...[]byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(cmd)), 10)
	dst = append(dst, LF)
	dst = append(dst, cmd...)
	dst = append(dst, LF)

	for _, arg := range args {
		dst = strconv.AppendInt(dst, int64(len(arg)), 10)
		dst = append(dst, LF)
		dst = append(dst, arg...)
		dst = append(dst, LF)
	}

	return append(dst, LF)
}

// RequestSize returns the number of bytes AppendRequest produces.
func RequestSize(cmd string, args ...[]byte) int {
	n := blockSize(len(cmd)) + 1
	for _, arg := range args {
		n += blockSize(len(arg))
	}
	return n
}

func blockSize(n int) int {
	digits := 1
	for v := n; v >= 10; v /= 10 {
		digits++
	}
	return digits + 1 + n + 1
}

// WriteRequest serializes one request and writes it to w.
//
// The request is built in a pooled buffer so it reaches w as one Write.
// Partial writes are continued until the whole request is written; a write
// that makes no progress without an error reports io.ErrShortWrite.
func WriteRequest(w io.Writer, cmd string, args [][]byte) (int, error) {
	buf := bufferPool.Get()
	defer bufferPool.Put(buf)

	buf.Grow(RequestSize(cmd, args...))
	b := AppendRequest(buf.AvailableBuffer(), cmd, args...)

	return WriteFull(w, b)
}

// WriteFull writes all of b to w, looping over short writes.
func WriteFull(w io.Writer, b []byte) (int, error) {
	written := 0
	for written < len(b) {
		n, err := w.Write(b[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}
