// Package client drives one scripted exchange over a single TCP connection:
// connect, then for each script line send a request frame and reassemble
// response frames until the caller's predicate stops the receive loop.
//
// All I/O is synchronous and blocking. The session owns the connection;
// sender and reassembler only borrow it for one operation at a time.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var (
	ErrNoReachableAddress = errors.New("client: no reachable address")
	ErrSessionClosed      = errors.New("client: session already closed")
)

// Session is one live connection to the action server.
type Session struct {
	conn   net.Conn
	logger zerolog.Logger
	closed atomic.Bool
}

// NewSession wraps an already-connected byte stream. Callers that dial
// through Connect never need this; it exists for collaborators that
// supply their own connector.
func NewSession(conn net.Conn, logger zerolog.Logger) *Session {
	return &Session{conn: conn, logger: logger}
}

// Connect resolves host and dials each resolved address in order,
// returning a session on the first address that accepts. All candidates
// failing is a connection error.
func Connect(ctx context.Context, host, port string, logger zerolog.Logger) (*Session, error) {
	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("client: resolve %s: %w", host, err)
	}

	var dialer net.Dialer
	var lastErr error
	for _, addr := range addrs {
		target := net.JoinHostPort(addr, port)
		conn, err := dialer.DialContext(ctx, "tcp", target)
		if err != nil {
			logger.Debug().Str("addr", target).Err(err).Msg("connect attempt failed")
			lastErr = err
			continue
		}
		logger.Info().Str("addr", target).Msg("connected")
		return NewSession(conn, logger), nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %s port %s: %v", ErrNoReachableAddress, host, port, lastErr)
	}
	return nil, fmt.Errorf("%w: %s port %s", ErrNoReachableAddress, host, port)
}

// Close shuts the connection down. Closing an already-closed session
// reports ErrSessionClosed.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return ErrSessionClosed
	}
	s.logger.Debug().Msg("closing connection")
	return s.conn.Close()
}
