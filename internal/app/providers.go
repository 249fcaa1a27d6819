package app

import (
	"context"
	"net/http"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dispatch/internal/gateway/geocode"
	"dispatch/internal/handlers/kafka-consumer/order_created"
	"dispatch/internal/handlers/rest/order_cancel_post"
	"dispatch/internal/handlers/rest/order_confirm_post"
	"dispatch/internal/handlers/rest/order_pickup_post"
	"dispatch/internal/handlers/rest/order_post"
	"dispatch/internal/handlers/tasks/offer_sweep"
	"dispatch/internal/pkg/config"
	"dispatch/internal/realtime"
	actorRepo "dispatch/internal/repository/actor"
	orderRepo "dispatch/internal/repository/order"
	shopRepo "dispatch/internal/repository/shop"
	dispatchService "dispatch/internal/service/dispatch"
	geofeedService "dispatch/internal/service/geofeed"
	orderService "dispatch/internal/service/order"
	otpService "dispatch/internal/service/otp"
	"dispatch/internal/service/presence"
	statsService "dispatch/internal/service/stats"
	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"
)

type (
	SweepInterval time.Duration
)

type Application struct {
	ServiceOrder      ServiceOrder
	Realtime          *realtime.Handler
	KafkaHandler      *order_created.Handler
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	order_post.Service
	order_confirm_post.Service
	order_pickup_post.Service
	order_cancel_post.Service
}

// trackingServices связывает геоленту и диспетчер: диспетчеру нужны
// свежие позиции для ранжирования, геоленте - активные назначения для
// адресной рассылки позиций покупателям.
type trackingServices struct {
	GeoFeed    *geofeedService.Service
	Dispatcher *dispatchService.Service
}

// lazyAssignmentIndex разрывает цикл конструирования: геолента создается
// раньше диспетчера и получает индекс назначений через эту прослойку.
type lazyAssignmentIndex struct {
	delegate geofeedService.AssignmentIndex
}

func (l *lazyAssignmentIndex) ActiveAssignment(agentID string) (string, string, bool) {
	if l.delegate == nil {
		return "", "", false
	}
	return l.delegate.ActiveAssignment(agentID)
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideActorRepository(querier *querier.Querier) *actorRepo.Repository {
	return actorRepo.New(querier)
}

func provideShopRepository(querier *querier.Querier) *shopRepo.Repository {
	return shopRepo.New(querier)
}

func providePresenceRegistry(log logger.Logger) *presence.Registry {
	return presence.NewRegistry(log)
}

func provideGeocoder(cfg *config.Config) *geocode.Geocoder {
	client := &http.Client{Timeout: cfg.Geocoder.Timeout}
	return geocode.New(client, cfg.Geocoder.BaseURL)
}

func provideTrackingServices(
	ctx context.Context,
	repository *orderRepo.Repository,
	registry *presence.Registry,
	actors *actorRepo.Repository,
	cfg *config.Config,
) (*trackingServices, error) {
	index := &lazyAssignmentIndex{}
	geoFeed := geofeedService.New(registry, actors, index, cfg.GeoFeed.FreshnessWindow)
	dispatcher := dispatchService.New(
		repository,
		registry,
		geoFeed,
		cfg.Dispatch.TopK,
		cfg.Dispatch.OfferTTL,
	)
	index.delegate = dispatcher

	// индекс привязок живет в памяти, после рестарта его нужно
	// восстановить из хранилища до первой диспетчеризации
	if err := dispatcher.RestoreAssignments(ctx); err != nil {
		return nil, err
	}

	return &trackingServices{
		GeoFeed:    geoFeed,
		Dispatcher: dispatcher,
	}, nil
}

func provideGeoFeed(tracking *trackingServices) *geofeedService.Service {
	return tracking.GeoFeed
}

func provideDispatcher(tracking *trackingServices) *dispatchService.Service {
	return tracking.Dispatcher
}

func provideOrderService(
	repository orderService.Repository,
	shops orderService.ShopSource,
	geocoder orderService.Geocoder,
	dispatcher orderService.Dispatcher,
	registry orderService.Presence,
	txManager orderService.TxManager,
) *orderService.Service {
	return orderService.New(repository, shops, geocoder, dispatcher, registry, txManager)
}

func provideOtpService(
	repository otpService.Repository,
	registry otpService.Presence,
	orders otpService.OrderCompleter,
	cfg *config.Config,
) *otpService.Service {
	return otpService.New(repository, registry, orders, cfg.Otp.Length, cfg.Otp.ValidityWindow)
}

func provideStatsService(repository statsService.Repository) *statsService.Service {
	return statsService.New(repository)
}

func provideRealtimeRouter(
	log logger.Logger,
	registry *presence.Registry,
	geoFeed *geofeedService.Service,
	dispatcher *dispatchService.Service,
	otp *otpService.Service,
	orders *orderService.Service,
	stats *statsService.Service,
) *realtime.Router {
	return realtime.NewRouter(log, registry, geoFeed, dispatcher, otp, orders, stats)
}

func provideRealtimeHandler(log logger.Logger, router *realtime.Router, registry *presence.Registry) *realtime.Handler {
	return realtime.New(log, router, registry)
}

func provideKafkaHandler(log logger.Logger, orders *orderService.Service, cfg *config.Config) *order_created.Handler {
	return order_created.New(log, orders, cfg.Kafka.Handlers.OrderCreated.ProcessTimeout)
}

func provideSweepInterval(cfg *config.Config) SweepInterval {
	return SweepInterval(cfg.Tasks.OfferSweepInterval)
}

func provideOfferSweepTask(
	log logger.Logger,
	dispatcher offer_sweep.Service,
	interval SweepInterval,
) *offer_sweep.OfferSweep {
	return offer_sweep.NewOfferSweep(log, dispatcher, time.Duration(interval))
}

func provideTaskList(
	offerSweepTask *offer_sweep.OfferSweep,
) []background.Task {
	return []background.Task{
		offerSweepTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
