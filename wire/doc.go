// Package wire implements the SSDB wire protocol framing.
//
// It only serializes and parses; connection management, command semantics
// and response typing live in the parent package.
//
// # Framing
//
// Requests and responses share one format. Every element is a block:
//
//	<decimal length>\n<raw bytes>\n
//
// A request is the command name followed by its arguments, a response is a
// status token followed by payload blocks. Both end with a blank line:
//
//	3\nset\n3\nfoo\n3\nbar\n\n   request:  set foo bar
//	2\nok\n1\n1\n\n              response: ok 1
//
// # Serialization and Parsing
//
// AppendRequest and WriteRequest encode requests:
//
//	_, err := wire.WriteRequest(conn, "get", [][]byte{[]byte("foo")})
//
// Parser decodes responses incrementally. It never reads by itself, the
// caller feeds it whatever the transport returned:
//
//	var p wire.Parser
//	buf := make([]byte, 64*1024)
//	for {
//	    group, err := p.Next()
//	    if err != nil {
//	        return err // *ParseError, close the connection
//	    }
//	    if group != nil {
//	        return group, nil
//	    }
//	    n, err := conn.Read(buf)
//	    p.Feed(buf[:n])
//	    ...
//	}
//
// # Error Handling
//
// The error types carry the connection state:
//
//   - ParseError: malformed stream, CLOSE connection
//   - ConnectionError: EOF or write failure, connection already broken
//   - TimeoutError: deadline expired, connection can be REUSED
//
// Use ShouldCloseConnection to pick the strategy.
//
// # Thread Safety
//
// AppendRequest and WriteRequest are safe for concurrent use. A Parser is
// not; each connection owns its own.
package wire
