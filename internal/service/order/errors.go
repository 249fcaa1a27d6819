package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrShopOrderNotFound = errors.New("shop order not found")
	ErrShopNotFound      = errors.New("shop not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotAssignedAgent  = errors.New("caller is not the assigned agent")
	ErrInvalidOrder      = errors.New("invalid order")
)
