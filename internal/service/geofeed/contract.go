//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=geofeed_test
package geofeed

import (
	"context"

	"dispatch/internal/entities"
)

type Presence interface {
	Send(actorID string, event string, payload interface{}) error
	IsOnline(actorID string) bool
}

type ActorSource interface {
	GetActorByID(ctx context.Context, id string) (*entities.Actor, error)
}

// AssignmentIndex отвечает на вопрос "какой заказ сейчас везет курьер".
// Реализуется диспетчером назначений.
type AssignmentIndex interface {
	ActiveAssignment(agentID string) (orderID string, customerID string, ok bool)
}
