package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/order"
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

func (r *Repository) GetShopByID(ctx context.Context, id string) (*entities.Shop, error) {
	query := `
		SELECT id, name, latitude, longitude, created_at
		FROM shops
		WHERE id = $1
	`

	var shopModel ShopDB
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&shopModel.ID,
		&shopModel.Name,
		&shopModel.Latitude,
		&shopModel.Longitude,
		&shopModel.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrShopNotFound
		}
		return nil, fmt.Errorf("unexpected shop repository getbyid error: %w", repository.Unavailable(err))
	}

	return ToDomain(&shopModel), nil
}
