package testutils

import (
	"bytes"
	"io"
	"net"
	"strings"
	"time"
)

// ErrTimeout is a net.Error reporting a deadline expiry.
var ErrTimeout net.Error = timeoutError{}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

// ConnectionMock is a scripted net.Conn for testing.
//
// Reads return the scripted response bytes, at most ChunkSize bytes per call
// when ChunkSize is set. Once the script is exhausted, reads return ReadErr,
// io.EOF by default.
type ConnectionMock struct {
	ChunkSize int
	ReadErr   error
	WriteErr  error

	readBuf    *bytes.Buffer
	writeBuf   *bytes.Buffer
	closeCount int
	deadlines  []time.Time
}

// NewConnectionMock creates a new mock connection with pre-configured response data
func NewConnectionMock(responseData ...string) *ConnectionMock {
	return &ConnectionMock{
		ReadErr:  io.EOF,
		readBuf:  bytes.NewBufferString(strings.Join(responseData, "")),
		writeBuf: &bytes.Buffer{},
	}
}

// AddResponse appends bytes to the read script.
func (m *ConnectionMock) AddResponse(data ...string) {
	for _, d := range data {
		m.readBuf.WriteString(d)
	}
}

func (m *ConnectionMock) Read(b []byte) (int, error) {
	if m.readBuf.Len() == 0 {
		return 0, m.ReadErr
	}
	if m.ChunkSize > 0 && len(b) > m.ChunkSize {
		b = b[:m.ChunkSize]
	}
	return m.readBuf.Read(b)
}

func (m *ConnectionMock) Write(b []byte) (int, error) {
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}
	return m.writeBuf.Write(b)
}

func (m *ConnectionMock) Close() error {
	m.closeCount++
	return nil
}

func (m *ConnectionMock) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (m *ConnectionMock) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8888}
}

func (m *ConnectionMock) SetDeadline(t time.Time) error {
	m.deadlines = append(m.deadlines, t)
	return nil
}

func (m *ConnectionMock) SetReadDeadline(t time.Time) error  { return nil }
func (m *ConnectionMock) SetWriteDeadline(t time.Time) error { return nil }

// Written returns the raw request bytes written to the mock connection.
func (m *ConnectionMock) Written() string {
	return m.writeBuf.String()
}

// ResetWritten forgets the bytes written so far.
func (m *ConnectionMock) ResetWritten() {
	m.writeBuf.Reset()
}

// CloseCount returns how many times Close was called.
func (m *ConnectionMock) CloseCount() int {
	return m.closeCount
}

// Deadlines returns every deadline set, in order.
func (m *ConnectionMock) Deadlines() []time.Time {
	return m.deadlines
}

// Remaining returns how many scripted bytes have not been read yet.
func (m *ConnectionMock) Remaining() int {
	return m.readBuf.Len()
}
