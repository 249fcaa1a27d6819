package stats

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
)

// Service считает доставки курьера для экрана заработка.
type Service struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// TodayDeliveries возвращает доставленные заказы курьера за текущие
// сутки UTC, сгруппированные по часам. Часы без доставок опускаются.
func (s *Service) TodayDeliveries(ctx context.Context, agentID string) ([]entities.HourBucket, error) {
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	buckets, err := s.repo.CountDeliveredByHour(ctx, agentID, from, now)
	if err != nil {
		return nil, fmt.Errorf("count deliveries for agent %s: %w", agentID, err)
	}
	return buckets, nil
}
