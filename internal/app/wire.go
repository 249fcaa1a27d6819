//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"

	"dispatch/internal/gateway/geocode"
	"dispatch/internal/handlers/tasks/offer_sweep"
	"dispatch/internal/pkg/config"
	orderRepo "dispatch/internal/repository/order"
	shopRepo "dispatch/internal/repository/shop"
	dispatchService "dispatch/internal/service/dispatch"
	orderService "dispatch/internal/service/order"
	otpService "dispatch/internal/service/otp"
	"dispatch/internal/service/presence"
	statsService "dispatch/internal/service/stats"
	"dispatch/pkg/logger"
	"dispatch/pkg/tx"
)

// InitializeApplication собирает единственный процесс сервиса: REST и
// websocket хендлеры, kafka-обработчик и фоновые задачи. Диспетчер,
// реестр присутствия и предложения доставки живут в памяти процесса,
// поэтому отдельного kafka-воркера нет.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideActorRepository,
		provideShopRepository,

		providePresenceRegistry,
		provideGeocoder,

		provideTrackingServices,
		provideGeoFeed,
		provideDispatcher,

		provideOrderService,
		provideOtpService,
		provideStatsService,

		provideRealtimeRouter,
		provideRealtimeHandler,
		provideKafkaHandler,

		provideSweepInterval,
		provideOfferSweepTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.ShopSource), new(*shopRepo.Repository)),
		wire.Bind(new(orderService.Geocoder), new(*geocode.Geocoder)),
		wire.Bind(new(orderService.Dispatcher), new(*dispatchService.Service)),
		wire.Bind(new(orderService.Presence), new(*presence.Registry)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),

		wire.Bind(new(otpService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(otpService.Presence), new(*presence.Registry)),
		wire.Bind(new(otpService.OrderCompleter), new(*orderService.Service)),

		wire.Bind(new(statsService.Repository), new(*orderRepo.Repository)),

		wire.Bind(new(offer_sweep.Service), new(*dispatchService.Service)),
	)
	return &Application{}, nil
}
