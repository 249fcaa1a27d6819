package presence

import (
	"dispatch/pkg/logger"
)

// Conn - живое соединение клиента. Реализуется транспортным слоем
// (internal/realtime), реестр присутствия знает только этот контракт.
type Conn interface {
	ID() string
	Send(event string, payload interface{}) error
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
