//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
	GetActiveAssignments(ctx context.Context) ([]entities.AgentAssignment, error)

	// AssignAgent привязывает курьера к заказу условным обновлением:
	// запись меняется только если заказ еще не назначен. Проигравшая
	// гонку запись получает ErrAlreadyAssigned.
	AssignAgent(ctx context.Context, orderID string, agentID string) error
}

type Presence interface {
	Send(actorID string, event string, payload interface{}) error
	IsOnline(actorID string) bool
}

type Locations interface {
	FreshLocations() []entities.AgentLocation
}
