package client

import (
	"errors"
	"io"

	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/protocol"
	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/script"
)

// ResponseHandler receives one decoded response for the given request
// action and reports whether the receive loop for that request is done.
type ResponseHandler func(action protocol.Action, response string) bool

// Run walks the script in file order: send each line's request, then
// receive responses until handle signals completion for that request.
// The first send or receive failure aborts the session.
func (s *Session) Run(lines *script.Reader, handle ResponseHandler) error {
	for {
		line, err := lines.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.Send(line.Action, line.Message); err != nil {
			return err
		}
		if err := s.ReceiveUntil(func(response string) bool {
			return handle(line.Action, response)
		}); err != nil {
			return err
		}
	}
}
