// Package script reads (action, message) instruction lines for the client.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/protocol"
)

// Line is one instruction parsed from the script source.
type Line struct {
	Action  protocol.Action
	Message string
}

// Reader produces script lines one at a time from a text source.
// It is a forward-only pass over the source; once Next returns io.EOF
// the reader is exhausted.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps a line-oriented text source such as a file or stdin.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next well-formed script line.
//
// Lines are skipped, not rejected, when they are empty, begin with a
// space, have no action/message separator, or name an unknown action.
// Next returns io.EOF when the source is exhausted and a wrapped error
// when the underlying read fails.
func (r *Reader) Next() (Line, error) {
	for r.scanner.Scan() {
		raw := r.scanner.Text()
		if raw == "" || raw[0] == ' ' {
			continue
		}
		token, message, ok := strings.Cut(raw, " ")
		if !ok {
			continue
		}
		action, err := protocol.ParseAction(token)
		if err != nil {
			continue
		}
		return Line{Action: action, Message: message}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Line{}, fmt.Errorf("script: read line: %w", err)
	}
	return Line{}, io.EOF
}
