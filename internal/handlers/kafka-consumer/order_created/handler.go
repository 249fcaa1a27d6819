package order_created

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/geocode"
	orderservice "dispatch/internal/service/order"
	"dispatch/pkg/logger"
)

// createdEvent - событие оформления заказа из внешнего маркетплейса.
type createdEvent struct {
	CustomerID      string             `json:"customerId"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Carts           []createdEventCart `json:"carts"`
}

type createdEventCart struct {
	ShopID string             `json:"shopId"`
	Items  []createdEventItem `json:"items"`
}

type createdEventItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type Handler struct {
	orderService             Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, orderService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		orderService:             orderService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				// Messages() закрыт — выходим
				h.log.Info("order.created: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Сессия закрыта (rebalance или остановка consumer group) — выходим
			h.log.Info("order.created: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно прервать ConsumeClaim (при отмене контекста).
// Возвращает false для продолжения обработки следующих сообщений.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event createdEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("order.created handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("customer", event.CustomerID),
		logger.NewField("carts", len(event.Carts)),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("order.created processing")

	input := orderservice.CreateOrderInput{
		CustomerID:      event.CustomerID,
		DeliveryAddress: event.DeliveryAddress,
	}
	for _, cart := range event.Carts {
		items := make([]entities.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			items = append(items, entities.OrderItem{
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}
		input.Carts = append(input.Carts, orderservice.CartInput{
			ShopID: cart.ShopID,
			Items:  items,
		})
	}

	err = h.orderService.ProcessOrderCreated(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.created handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, orderservice.ErrInvalidOrder):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.created handler invalid order event")

		case errors.Is(err, orderservice.ErrShopNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.created handler unknown shop in cart")

		case errors.Is(err, geocode.ErrAddressNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.created handler address not geocoded")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.created handler failed to process order")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("order.created: processed")

	sess.MarkMessage(message, "")
	return false
}
