package actor

import "dispatch/internal/entities"

func ToDomain(a *ActorDB) *entities.Actor {
	if a == nil {
		return nil
	}
	return &entities.Actor{
		ID:        a.ID,
		Name:      a.Name,
		Role:      entities.ActorRole(a.Role),
		CreatedAt: a.CreatedAt,
	}
}
