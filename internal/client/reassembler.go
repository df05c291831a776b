package client

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/protocol"
)

// initialBufferSize is the reassembly buffer's starting capacity. The
// buffer doubles whenever a declared frame length cannot fit, so growth
// is logarithmic in the largest frame seen.
const initialBufferSize = 1024

// ReceiveUntil reads response frames from the connection and hands each
// decoded message to done, in wire order, until done returns true or the
// peer closes the connection. Peer close is a normal terminal condition,
// not a failure; it is the caller's business whether it saw enough
// responses by then. A read error aborts the operation.
func (s *Session) ReceiveUntil(done func(message string) bool) error {
	if err := receiveUntil(s.conn, s.logger, done); err != nil {
		return fmt.Errorf("client: receive: %w", err)
	}
	return nil
}

// receiveUntil is the reassembly loop. Raw reads arrive in arbitrary
// chunks; buf accumulates them and valid counts the bytes currently
// held. Each pass decodes as many complete frames as the buffer holds,
// shifting the remainder to the front, so several frames delivered in
// one read need no further reads.
func receiveUntil(r io.Reader, logger zerolog.Logger, done func(message string) bool) error {
	buf := make([]byte, initialBufferSize)
	valid := 0

	for {
		n, readErr := r.Read(buf[valid:])
		if n > 0 {
			valid += n
			logger.Trace().Int("read_bytes", n).Int("buffered", valid).Msg("chunk received")

			for valid > 0 {
				length, prefixLen, err := protocol.ParseLengthPrefix(buf[:valid])
				if errors.Is(err, protocol.ErrNoLengthPrefix) {
					// Prefix digits arrived but the separator has not. Keep
					// them; grow first if the buffer has no room to read into.
					if valid == len(buf) {
						grown := make([]byte, len(buf)*2)
						copy(grown, buf[:valid])
						buf = grown
					}
					break
				}
				if err != nil {
					// Desync recovery: the buffer does not start at a frame
					// boundary, so discard it and wait for more data. Kept
					// lenient, but no longer silent.
					logger.Warn().Int("discarded_bytes", valid).Err(err).Msg("buffer desynchronized, discarding")
					valid = 0
					break
				}

				if length > len(buf)-prefixLen-1 {
					// Frame cannot fit at current capacity. Double and go
					// read more; another pass doubles again if needed.
					grown := make([]byte, len(buf)*2)
					copy(grown, buf[:valid])
					buf = grown
					logger.Trace().Int("capacity", len(buf)).Int("declared", length).Msg("reassembly buffer grown")
					break
				}

				if valid-prefixLen-1 < length {
					// Incomplete frame; keep what we have and read more.
					break
				}

				message := string(buf[prefixLen+1 : prefixLen+1+length])
				consumed := prefixLen + 1 + length
				copy(buf, buf[consumed:valid])
				valid -= consumed

				if done(message) {
					return nil
				}
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				logger.Info().Msg("connection closed by peer")
				return nil
			}
			return readErr
		}
	}
}
