// Package echoserver runs an in-process action server for tests. It
// speaks the same request/response framing as the real server: for each
// request it applies the named transform and writes one response frame.
package echoserver

import (
	"bufio"
	"errors"
	"io"
	"math/rand"
	"net"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/protocol"
)

// Server listens on a loopback port and serves until Close.
type Server struct {
	listener net.Listener
	group    errgroup.Group
	rng      *rand.Rand

	mu    sync.Mutex
	conns []net.Conn
}

// New binds a loopback listener and starts the accept loop. Seed fixes
// the shuffle/random transforms for reproducible assertions.
func New(seed int64) (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener: listener,
		rng:      rand.New(rand.NewSource(seed)),
	}
	s.group.Go(s.acceptLoop)
	return s, nil
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close stops the listener, drops live connections, and waits for all
// handlers to finish.
func (s *Server) Close() error {
	err := s.listener.Close()
	s.mu.Lock()
	for _, c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()
	if werr := s.group.Wait(); err == nil {
		err = werr
	}
	return err
}

func (s *Server) acceptLoop() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		s.group.Go(func() error {
			return s.handle(conn)
		})
	}
}

func (s *Server) handle(conn net.Conn) error {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		action, message, err := readRequest(r)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return nil // malformed or torn-down client, drop the connection
		}
		response := protocol.EncodeResponse(s.transform(action, message))
		if _, err := conn.Write(response); err != nil {
			return nil
		}
	}
}

// readRequest decodes one "<action> <len> <message>" frame from the stream.
func readRequest(r *bufio.Reader) (protocol.Action, string, error) {
	token, err := r.ReadString(' ')
	if err != nil {
		return "", "", err
	}
	action, err := protocol.ParseAction(strings.TrimSuffix(token, " "))
	if err != nil {
		return "", "", err
	}

	prefix, err := r.ReadString(' ')
	if err != nil {
		return "", "", err
	}
	length, _, err := protocol.ParseLengthPrefix([]byte(prefix))
	if err != nil {
		return "", "", err
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return "", "", err
	}
	return action, string(payload), nil
}

func (s *Server) transform(action protocol.Action, message string) string {
	switch action {
	case protocol.ActionUppercase:
		return strings.ToUpper(message)
	case protocol.ActionLowercase:
		return strings.ToLower(message)
	case protocol.ActionReverse:
		return reverse(message)
	case protocol.ActionShuffle:
		b := []byte(message)
		s.mu.Lock()
		s.rng.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
		s.mu.Unlock()
		return string(b)
	case protocol.ActionRandom:
		s.mu.Lock()
		pick := protocol.Actions[s.rng.Intn(4)]
		s.mu.Unlock()
		return s.transform(pick, message)
	}
	return message
}

func reverse(message string) string {
	b := []byte(message)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
