package client

import (
	"fmt"
	"io"

	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/protocol"
)

// Send frames action and message as one request and writes it fully to
// the connection. Any write error is fatal to the operation; no partial
// success is reported.
func (s *Session) Send(action protocol.Action, message string) error {
	frame := protocol.EncodeRequest(action, message)
	s.logger.Trace().Str("action", action.String()).Int("frame_bytes", len(frame)).Msg("sending request")
	if err := writeFull(s.conn, frame); err != nil {
		return fmt.Errorf("client: send %s request: %w", action, err)
	}
	return nil
}

// writeFull loops until every byte of frame has been written. A single
// write may transmit fewer bytes than requested.
func writeFull(w io.Writer, frame []byte) error {
	for sent := 0; sent < len(frame); {
		n, err := w.Write(frame[sent:])
		if err != nil {
			return err
		}
		sent += n
	}
	return nil
}
