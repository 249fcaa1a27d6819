//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stats_test
package stats

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

type Repository interface {
	CountDeliveredByHour(ctx context.Context, agentID string, from, to time.Time) ([]entities.HourBucket, error)
}
