package entities

import "time"

type Actor struct {
	ID        string
	Name      string
	Role      ActorRole
	CreatedAt time.Time
}

type ActorRole string

const (
	RoleCustomer      ActorRole = "customer"
	RoleShop          ActorRole = "shop"
	RoleDeliveryAgent ActorRole = "deliveryAgent"
)

func (r ActorRole) String() string {
	return string(r)
}
