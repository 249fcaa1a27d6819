//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=realtime_test
package realtime

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/internal/service/presence"
	"dispatch/pkg/logger"
)

type PresenceRegistry interface {
	Register(actorID string, conn presence.Conn)
	Unregister(conn presence.Conn)
}

type GeoFeed interface {
	ReportLocation(ctx context.Context, agentID string, latitude, longitude float64) error
}

type Dispatcher interface {
	Accept(ctx context.Context, agentID string, orderID string) error
	PendingOffers(agentID string) []entities.AssignmentOffer
}

type OtpService interface {
	Issue(ctx context.Context, agentID string, orderID string, shopOrderID string) error
	Verify(ctx context.Context, agentID string, orderID string, shopOrderID string, submitted string) error
}

type OrderService interface {
	ActiveOrderForAgent(ctx context.Context, agentID string) (*entities.Order, error)
}

type StatsService interface {
	TodayDeliveries(ctx context.Context, agentID string) ([]entities.HourBucket, error)
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
