//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=otp_test
package otp

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
	SetShopOrderOtp(ctx context.Context, shopOrderID string, otp entities.DeliveryOtp) error
	ClearShopOrderOtp(ctx context.Context, shopOrderID string) error
}

type Presence interface {
	Send(actorID string, event string, payload interface{}) error
}

// OrderCompleter переводит shop order в delivered после успешной проверки
// кода. Это единственный путь в delivered.
type OrderCompleter interface {
	CompleteDelivery(ctx context.Context, orderID string, shopOrderID string) error
}
