package offer_sweep

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type Service interface {
	SweepExpiredOffers(ctx context.Context) error
}

// OfferSweep периодически переразыгрывает заказы, предложения по которым
// истекли не принятыми.
type OfferSweep struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewOfferSweep(log logger.Logger, service Service, interval time.Duration) *OfferSweep {
	return &OfferSweep{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (o *OfferSweep) TTL() time.Duration {
	return o.interval
}

func (o *OfferSweep) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	return o.service.SweepExpiredOffers(ctxWithTimeout)
}

func (o *OfferSweep) Info() string {
	return "offer sweep"
}
