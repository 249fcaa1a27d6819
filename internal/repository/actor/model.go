package actor

import "time"

type ActorDB struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
}
