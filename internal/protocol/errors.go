package protocol

import "errors"

var (
	ErrUnknownAction   = errors.New("protocol: unknown action")
	ErrNoLengthPrefix  = errors.New("protocol: incomplete length prefix")
	ErrBadLengthPrefix = errors.New("protocol: malformed length prefix")
	ErrTruncated       = errors.New("protocol: truncated frame")
)
