package actor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/geofeed"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetActorByID(ctx context.Context, id string) (*entities.Actor, error) {
	query := `
		SELECT id, name, role, created_at
		FROM users
		WHERE id = $1
	`

	var actorModel ActorDB
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&actorModel.ID,
		&actorModel.Name,
		&actorModel.Role,
		&actorModel.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// неизвестный пользователь заведомо не курьер
			return nil, geofeed.ErrNotDeliveryAgent
		}
		return nil, fmt.Errorf("unexpected actor repository getbyid error: %w", repository.Unavailable(err))
	}

	return ToDomain(&actorModel), nil
}
