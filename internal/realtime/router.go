package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/repository"
	"dispatch/internal/service/dispatch"
	"dispatch/internal/service/geofeed"
	"dispatch/internal/service/order"
	"dispatch/internal/service/otp"
	"dispatch/pkg/logger"
)

type commandFn func(ctx context.Context, c *Client, payload json.RawMessage) error

// Router превращает кадры протокола в вызовы сервисов. Таблица команд
// единственная точка расширения протокола: новая команда - новая строка
// таблицы. Все команды кроме identity требуют идентифицированного
// соединения.
type Router struct {
	log        handlerLogger
	registry   PresenceRegistry
	geofeed    GeoFeed
	dispatcher Dispatcher
	otp        OtpService
	orders     OrderService
	stats      StatsService

	commands map[string]commandFn
}

func NewRouter(
	log handlerLogger,
	registry PresenceRegistry,
	geofeed GeoFeed,
	dispatcher Dispatcher,
	otpService OtpService,
	orders OrderService,
	stats StatsService,
) *Router {
	r := &Router{
		log:        log.With(logger.NewField("component", "realtime")),
		registry:   registry,
		geofeed:    geofeed,
		dispatcher: dispatcher,
		otp:        otpService,
		orders:     orders,
		stats:      stats,
	}
	r.commands = map[string]commandFn{
		CommandIdentity:           r.handleIdentity,
		CommandReportLocation:     r.handleReportLocation,
		CommandAcceptAssignment:   r.handleAcceptAssignment,
		CommandSendDeliveryOtp:    r.handleSendDeliveryOtp,
		CommandVerifyDeliveryOtp:  r.handleVerifyDeliveryOtp,
		CommandGetAssignments:     r.handleGetAssignments,
		CommandGetCurrentOrder:    r.handleGetCurrentOrder,
		CommandGetTodayDeliveries: r.handleGetTodayDeliveries,
	}
	return r
}

// Handle обрабатывает один кадр. Возврат ErrUnauthenticated сигналит
// транспорту закрыть соединение.
func (r *Router) Handle(ctx context.Context, c *Client, envelope Envelope) error {
	if envelope.Type != CommandIdentity && c.actorID == "" {
		_ = c.Send(eventError, errorPayload{Code: "Unauthenticated", Message: "identity handshake required"})
		return ErrUnauthenticated
	}

	fn, ok := r.commands[envelope.Type]
	if !ok {
		_ = c.Send(eventError, errorPayload{Code: "UnknownCommand", Message: envelope.Type})
		return nil
	}

	if err := fn(ctx, c, envelope.Payload); err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return err
		}
		r.log.Warn("command failed",
			logger.NewField("command", envelope.Type),
			logger.NewField("actor", c.actorID),
			logger.NewField("error", err),
		)
		_ = c.Send(eventError, errorPayload{Code: errorCode(err), Message: err.Error()})
	}
	return nil
}

func (r *Router) handleIdentity(_ context.Context, c *Client, payload json.RawMessage) error {
	var p identityPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("identity payload: %w", err)
	}
	if strings.TrimSpace(p.UserID) == "" {
		_ = c.Send(eventError, errorPayload{Code: "Unauthenticated", Message: "userId is required"})
		return ErrUnauthenticated
	}

	c.actorID = p.UserID
	r.registry.Register(p.UserID, c)

	return c.Send(eventIdentified, identityPayload{UserID: p.UserID})
}

func (r *Router) handleReportLocation(ctx context.Context, c *Client, payload json.RawMessage) error {
	var p reportLocationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("reportLocation payload: %w", err)
	}

	err := r.geofeed.ReportLocation(ctx, c.actorID, p.Latitude, p.Longitude)
	if errors.Is(err, geofeed.ErrInvalidLocation) {
		// клиенту не отвечаем, битые координаты просто не попадают в кэш
		r.log.Warn("invalid location dropped",
			logger.NewField("actor", c.actorID),
			logger.NewField("error", err),
		)
		return nil
	}
	return err
}

func (r *Router) handleAcceptAssignment(ctx context.Context, c *Client, payload json.RawMessage) error {
	var p acceptAssignmentPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("acceptAssignment payload: %w", err)
	}

	if err := r.dispatcher.Accept(ctx, c.actorID, p.OrderID); err != nil {
		return err
	}
	return c.Send(eventAssignmentAccepted, acceptAssignmentPayload{OrderID: p.OrderID})
}

func (r *Router) handleSendDeliveryOtp(ctx context.Context, c *Client, payload json.RawMessage) error {
	var p sendOtpPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("sendDeliveryOtp payload: %w", err)
	}

	if err := r.otp.Issue(ctx, c.actorID, p.OrderID, p.ShopOrderID); err != nil {
		return err
	}
	return c.Send(eventOtpSent, p)
}

func (r *Router) handleVerifyDeliveryOtp(ctx context.Context, c *Client, payload json.RawMessage) error {
	var p verifyOtpPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("verifyDeliveryOtp payload: %w", err)
	}

	if err := r.otp.Verify(ctx, c.actorID, p.OrderID, p.ShopOrderID, p.Otp); err != nil {
		return err
	}
	return c.Send(eventOtpVerified, sendOtpPayload{OrderID: p.OrderID, ShopOrderID: p.ShopOrderID})
}

func (r *Router) handleGetAssignments(_ context.Context, c *Client, _ json.RawMessage) error {
	offers := r.dispatcher.PendingOffers(c.actorID)
	return c.Send(eventAssignments, toOfferDTOs(offers))
}

func (r *Router) handleGetCurrentOrder(ctx context.Context, c *Client, _ json.RawMessage) error {
	active, err := r.orders.ActiveOrderForAgent(ctx, c.actorID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return c.Send(eventCurrentOrder, nil)
		}
		return err
	}
	return c.Send(eventCurrentOrder, toOrderDTO(active))
}

func (r *Router) handleGetTodayDeliveries(ctx context.Context, c *Client, _ json.RawMessage) error {
	buckets, err := r.stats.TodayDeliveries(ctx, c.actorID)
	if err != nil {
		return err
	}
	return c.Send(eventTodayDeliveries, toHourBucketDTOs(buckets))
}

// errorCode отображает ошибки сервисов в коды протокола. Проигрыш гонки
// принятия для клиента всегда AlreadyAssigned, из какой бы проверки он
// ни пришел.
func errorCode(err error) string {
	switch {
	case errors.Is(err, dispatch.ErrAlreadyAssigned),
		errors.Is(err, dispatch.ErrOfferNotFound),
		errors.Is(err, dispatch.ErrAgentBusy):
		return "AlreadyAssigned"
	case errors.Is(err, geofeed.ErrNotDeliveryAgent):
		return "NotDeliveryAgent"
	case errors.Is(err, otp.ErrOtpMismatch):
		return "OtpMismatch"
	case errors.Is(err, otp.ErrOtpExpired):
		return "OtpExpired"
	case errors.Is(err, otp.ErrOtpNotIssued):
		return "OtpNotIssued"
	case errors.Is(err, otp.ErrNotAssignedAgent), errors.Is(err, order.ErrNotAssignedAgent):
		return "NotAssignedAgent"
	case errors.Is(err, otp.ErrNotPickedUp):
		return "NotPickedUp"
	case errors.Is(err, otp.ErrShopOrderNotFound), errors.Is(err, order.ErrShopOrderNotFound):
		return "ShopOrderNotFound"
	case errors.Is(err, order.ErrOrderNotFound):
		return "OrderNotFound"
	case errors.Is(err, order.ErrInvalidTransition):
		return "InvalidTransition"
	case errors.Is(err, repository.ErrStoreUnavailable):
		return "StoreUnavailable"
	default:
		return "InternalError"
	}
}
