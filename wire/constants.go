package wire

// Status is the status token found in block 0 of every response.
type Status string

// Response status codes.
//
// StatusOK is the only success status. StatusNoAuth is special: clients must
// surface it as an authentication failure rather than a regular error.
const (
	StatusOK           Status = "ok"
	StatusNotFound     Status = "not_found"
	StatusError        Status = "error"
	StatusFail         Status = "fail"
	StatusClientError  Status = "client_error"
	StatusServerError  Status = "server_error"
	StatusDisconnected Status = "disconnected"
	StatusNoAuth       Status = "noauth"
)

// Protocol delimiters
const (
	// LF terminates every length line and every data block.
	LF = '\n'

	// CR is tolerated before LF; length lines are trimmed and data blocks
	// may be followed by CRLF.
	CR = '\r'
)

// Step is the state of the block-group parser.
type Step int

const (
	// StepSize expects a decimal length line, or a blank line ending the group.
	StepSize Step = iota

	// StepData expects exactly Parser.pending bytes followed by a line terminator.
	StepData
)

func (s Step) String() string {
	switch s {
	case StepSize:
		return "size"
	case StepData:
		return "data"
	default:
		return "unknown"
	}
}
