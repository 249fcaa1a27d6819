package realtime

import "errors"

var (
	ErrUnauthenticated = errors.New("connection is not identified")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrConnClosed      = errors.New("connection is closed")
	ErrSlowConsumer    = errors.New("send buffer is full")
)
