package client

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/protocol"
	"github.com/ParaeagleRyanC/ComputerNetworks-TcpClientV2/internal/testutil/testlog"
)

// chunkReader hands out a byte stream in at most chunkSize-byte reads,
// then io.EOF, simulating arbitrary TCP delivery.
type chunkReader struct {
	data      []byte
	chunkSize int
	reads     int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	c.reads++
	n := len(p)
	if c.chunkSize > 0 && n > c.chunkSize {
		n = c.chunkSize
	}
	if n > len(c.data) {
		n = len(c.data)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

// scriptedReader returns one scripted slice per Read call.
type scriptedReader struct {
	chunks [][]byte
	reads  int
}

func (s *scriptedReader) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	s.reads++
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return copy(p, chunk), nil
}

func frames(messages ...string) []byte {
	var raw []byte
	for _, m := range messages {
		raw = append(raw, protocol.EncodeResponse(m)...)
	}
	return raw
}

func collectAll(t *testing.T, r io.Reader) []string {
	t.Helper()
	var got []string
	err := receiveUntil(r, testlog.New(t), func(message string) bool {
		got = append(got, message)
		return false
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	return got
}

func TestReceiveSplitReadInvariance(t *testing.T) {
	want := []string{"HELLO", "ok", "", "one two three"}
	raw := frames(want...)

	for _, chunkSize := range []int{1, 2, 3, 7, len(raw)} {
		got := collectAll(t, &chunkReader{data: append([]byte(nil), raw...), chunkSize: chunkSize})
		if len(got) != len(want) {
			t.Fatalf("chunk=%d: got %d messages, want %d", chunkSize, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("chunk=%d: message %d = %q, want %q", chunkSize, i, got[i], want[i])
			}
		}
	}
}

func TestReceiveGrowsPastInitialCapacity(t *testing.T) {
	big := strings.Repeat("x", 5000)
	got := collectAll(t, &chunkReader{data: frames(big), chunkSize: 512})
	if len(got) != 1 || got[0] != big {
		t.Fatalf("large frame not reassembled: %d messages", len(got))
	}
}

func TestReceiveMultipleFramesInOneRead(t *testing.T) {
	r := &scriptedReader{chunks: [][]byte{frames("first", "second")}}
	var got []string
	err := receiveUntil(r, testlog.New(t), func(message string) bool {
		got = append(got, message)
		return len(got) == 2
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("unexpected messages: %v", got)
	}
	if r.reads != 1 {
		t.Fatalf("both frames arrived in one read but %d reads were made", r.reads)
	}
}

func TestReceiveStopsWhenDone(t *testing.T) {
	r := &scriptedReader{chunks: [][]byte{frames("only"), frames("never seen")}}
	var got []string
	err := receiveUntil(r, testlog.New(t), func(message string) bool {
		got = append(got, message)
		return true
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if len(got) != 1 || got[0] != "only" {
		t.Fatalf("unexpected messages: %v", got)
	}
}

func TestReceivePeerCloseIsSuccess(t *testing.T) {
	err := receiveUntil(&scriptedReader{}, testlog.New(t), func(string) bool {
		t.Fatal("no message expected")
		return true
	})
	if err != nil {
		t.Fatalf("peer close must not be an error: %v", err)
	}
}

func TestReceiveIncompletePayloadWaits(t *testing.T) {
	// Declared length 3 with only 2 payload bytes buffered: the loop
	// must wait for the third byte, not emit a short message.
	r := &scriptedReader{chunks: [][]byte{[]byte("3 ab"), []byte("c")}}
	got := collectAll(t, r)
	if len(got) != 1 || got[0] != "abc" {
		t.Fatalf("unexpected messages: %v", got)
	}
	if r.reads != 2 {
		t.Fatalf("expected 2 reads, got %d", r.reads)
	}
}

func TestReceiveZeroLengthMessage(t *testing.T) {
	got := collectAll(t, &scriptedReader{chunks: [][]byte{[]byte("0 ")}})
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("zero-length frame must still reach the predicate: %v", got)
	}
}

// The reassembler recovers from a desynchronized buffer by discarding
// it and reading on. Whether silent discard should instead surface as an
// error is deliberately unresolved; this test pins the lenient behavior.
func TestReceiveDesyncDiscardsBufferedBytes(t *testing.T) {
	r := &scriptedReader{chunks: [][]byte{
		[]byte("GARBAGE WITH SPACES"),
		frames("recovered"),
	}}
	got := collectAll(t, r)
	if len(got) != 1 || got[0] != "recovered" {
		t.Fatalf("unexpected messages: %v", got)
	}
}

func TestReceiveReadErrorIsFatal(t *testing.T) {
	boom := errors.New("connection reset")
	r := io.MultiReader(
		&scriptedReader{chunks: [][]byte{frames("fine")}},
		errReader{boom},
	)
	var got []string
	err := receiveUntil(r, testlog.New(t), func(message string) bool {
		got = append(got, message)
		return false
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	if len(got) != 1 || got[0] != "fine" {
		t.Fatalf("messages before the error should still be delivered: %v", got)
	}
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
