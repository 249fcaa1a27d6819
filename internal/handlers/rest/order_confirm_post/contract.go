//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_confirm_post_test
package order_confirm_post

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ConfirmShopOrder(ctx context.Context, orderID string, shopOrderID string) (*entities.Order, error)
}
