package protocol

import (
	"bytes"
	"strconv"
)

// Frame grammar, shared by encode and reassembly:
//
//	request:  <action> SP <decimal-len> SP <payload>
//	response: <decimal-len> SP <payload>
//
// The declared length counts payload bytes only. There is no terminator
// after the payload; the next frame begins immediately.

// EncodeRequest builds one request frame for action and message.
// A zero-length message is valid and yields an empty payload.
func EncodeRequest(action Action, message string) []byte {
	b := make([]byte, 0, len(action)+len(message)+12)
	b = append(b, action...)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(len(message)), 10)
	b = append(b, ' ')
	b = append(b, message...)
	return b
}

// EncodeResponse builds one response frame for message.
func EncodeResponse(message string) []byte {
	b := make([]byte, 0, len(message)+12)
	b = strconv.AppendInt(b, int64(len(message)), 10)
	b = append(b, ' ')
	b = append(b, message...)
	return b
}

// ParseLengthPrefix reads the declared payload length at the front of buf.
// It returns the length and the byte count of the decimal text before the
// separating space. ErrNoLengthPrefix means buf holds only digits so far
// and more bytes could still complete a prefix; ErrBadLengthPrefix means
// buf provably does not start at a frame boundary. Neither consumes input.
func ParseLengthPrefix(buf []byte) (length, prefixLen int, err error) {
	sp := bytes.IndexByte(buf, ' ')
	if sp < 0 {
		for _, c := range buf {
			if c < '0' || c > '9' {
				return 0, 0, ErrBadLengthPrefix
			}
		}
		return 0, 0, ErrNoLengthPrefix
	}
	if sp == 0 || buf[0] < '0' || buf[0] > '9' {
		return 0, 0, ErrBadLengthPrefix
	}
	n, err := strconv.Atoi(string(buf[:sp]))
	if err != nil || n < 0 {
		return 0, 0, ErrBadLengthPrefix
	}
	return n, sp, nil
}

// DecodeResponse extracts the first complete response frame in buf,
// returning the payload and the total bytes consumed. ErrTruncated means
// the declared payload extends past the end of buf.
func DecodeResponse(buf []byte) (message string, consumed int, err error) {
	length, prefixLen, err := ParseLengthPrefix(buf)
	if err != nil {
		return "", 0, err
	}
	end := prefixLen + 1 + length
	if end > len(buf) {
		return "", 0, ErrTruncated
	}
	return string(buf[prefixLen+1 : end]), end, nil
}

// DecodeRequest extracts the first complete request frame in buf.
func DecodeRequest(buf []byte) (action Action, message string, consumed int, err error) {
	sp := bytes.IndexByte(buf, ' ')
	if sp < 0 {
		return "", "", 0, ErrTruncated
	}
	action, err = ParseAction(string(buf[:sp]))
	if err != nil {
		return "", "", 0, err
	}
	message, n, err := DecodeResponse(buf[sp+1:])
	if err != nil {
		return "", "", 0, err
	}
	return action, message, sp + 1 + n, nil
}
