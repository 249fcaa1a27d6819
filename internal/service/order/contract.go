//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	CreateOrder(ctx context.Context, order *entities.Order) error
	GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
	GetActiveOrderByAgentID(ctx context.Context, agentID string) (*entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatusType) error
	UpdateShopOrderStatus(ctx context.Context, shopOrderID string, status entities.OrderStatusType) error
	UnassignAgent(ctx context.Context, orderID string) error
}

type ShopSource interface {
	GetShopByID(ctx context.Context, id string) (*entities.Shop, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (entities.GeoPoint, error)
}

type Dispatcher interface {
	DispatchOrder(ctx context.Context, order *entities.Order) error
	RetractOffers(orderID string)
	ReleaseAgent(agentID string)
}

type Presence interface {
	Send(actorID string, event string, payload interface{}) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
