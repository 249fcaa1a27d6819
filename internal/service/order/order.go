package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/entities"
	"dispatch/pkg/keymutex"
)

type CreateOrderInput struct {
	CustomerID      string
	DeliveryAddress string
	Carts           []CartInput
}

// CartInput - корзина одного магазина, превращается в отдельный shop
// order со своим жизненным циклом.
type CartInput struct {
	ShopID string
	Items  []entities.OrderItem
}

// Service - машина статусов заказа. Все переходы по одному заказу
// сериализуются замком по ключу заказа и фиксируются в транзакции вместе
// с пересчетом статуса заказа целиком.
type Service struct {
	repo       Repository
	shops      ShopSource
	geocoder   Geocoder
	dispatcher Dispatcher
	presence   Presence
	txManager  TxManager
	locks      *keymutex.KeyMutex
	now        func() time.Time
}

func New(
	repo Repository,
	shops ShopSource,
	geocoder Geocoder,
	dispatcher Dispatcher,
	presence Presence,
	txManager TxManager,
) *Service {
	return &Service{
		repo:       repo,
		shops:      shops,
		geocoder:   geocoder,
		dispatcher: dispatcher,
		presence:   presence,
		txManager:  txManager,
		locks:      keymutex.New(),
		now:        time.Now,
	}
}

// CreateOrder оформляет заказ: геокодирует адрес, собирает shop orders по
// корзинам, сохраняет и рассылает предложения доставки. Отсутствие
// свободных курьеров не срывает оформление: фоновая задача повторит
// рассылку.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*entities.Order, error) {
	if !isValidCreateOrderInput(input) {
		return nil, ErrInvalidOrder
	}

	point, err := s.geocoder.Geocode(ctx, input.DeliveryAddress)
	if err != nil {
		return nil, fmt.Errorf("geocode delivery address: %w", err)
	}

	now := s.now().UTC()
	order := &entities.Order{
		ID:         uuid.NewString(),
		CustomerID: input.CustomerID,
		DeliveryAddress: entities.Address{
			Text:  input.DeliveryAddress,
			Point: point,
		},
		Status:    entities.OrderPlaced,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, cart := range input.Carts {
		shop, err := s.shops.GetShopByID(ctx, cart.ShopID)
		if err != nil {
			return nil, fmt.Errorf("get shop %s: %w", cart.ShopID, err)
		}

		var subtotal int64
		for _, item := range cart.Items {
			subtotal += item.Price * int64(item.Quantity)
		}

		order.ShopOrders = append(order.ShopOrders, entities.ShopOrder{
			ID:           uuid.NewString(),
			OrderID:      order.ID,
			ShopID:       shop.ID,
			ShopName:     shop.Name,
			ShopLocation: shop.Location,
			Items:        cart.Items,
			Subtotal:     subtotal,
			Status:       entities.OrderPlaced,
		})
		order.Total += subtotal
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// кандидатов может не быть, заказ остается без курьера до
	// следующего прохода фоновой рассылки
	_ = s.dispatcher.DispatchOrder(ctx, order)

	s.pushStatus(order, "", entities.OrderPlaced)
	return order, nil
}

// ProcessOrderCreated - путь оформления через событие из брокера.
func (s *Service) ProcessOrderCreated(ctx context.Context, input CreateOrderInput) error {
	_, err := s.CreateOrder(ctx, input)
	return err
}

// ConfirmShopOrder подтверждает часть заказа магазином.
func (s *Service) ConfirmShopOrder(ctx context.Context, orderID string, shopOrderID string) (*entities.Order, error) {
	return s.transitionShopOrder(ctx, orderID, shopOrderID, entities.OrderConfirmedByShop)
}

// MarkPickedUp фиксирует выдачу заказа курьеру. Доступно только
// назначенному курьеру.
func (s *Service) MarkPickedUp(ctx context.Context, agentID string, orderID string, shopOrderID string) (*entities.Order, error) {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order.AssignedAgentID == nil || *order.AssignedAgentID != agentID {
		return nil, fmt.Errorf("agent %s on order %s: %w", agentID, orderID, ErrNotAssignedAgent)
	}

	return s.applyShopOrderStatus(ctx, order, shopOrderID, entities.OrderPickedUp)
}

// CompleteDelivery переводит shop order в delivered. Вызывается только
// протоколом подтверждения доставки после успешной проверки кода. Когда
// доставлена последняя часть, заказ завершается и курьер освобождается.
func (s *Service) CompleteDelivery(ctx context.Context, orderID string, shopOrderID string) error {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order %s: %w", orderID, err)
	}

	order, err = s.applyShopOrderStatus(ctx, order, shopOrderID, entities.OrderDelivered)
	if err != nil {
		return err
	}

	if order.Status == entities.OrderDelivered && order.AssignedAgentID != nil {
		s.dispatcher.ReleaseAgent(*order.AssignedAgentID)
	}
	return nil
}

// Cancel отменяет заказ из любого нетерминального статуса: снимает
// предложения, отвязывает курьера и отменяет все незавершенные части.
func (s *Service) Cancel(ctx context.Context, orderID string) (*entities.Order, error) {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, order.Status, ErrInvalidTransition)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for i := range order.ShopOrders {
			if order.ShopOrders[i].Status.IsTerminal() {
				continue
			}
			if err := s.repo.UpdateShopOrderStatus(ctx, order.ShopOrders[i].ID, entities.OrderCancelled); err != nil {
				return fmt.Errorf("cancel shop order %s: %w", order.ShopOrders[i].ID, err)
			}
			order.ShopOrders[i].Status = entities.OrderCancelled
		}

		if err := s.repo.UpdateOrderStatus(ctx, orderID, entities.OrderCancelled); err != nil {
			return fmt.Errorf("cancel order %s: %w", orderID, err)
		}
		return s.repo.UnassignAgent(ctx, orderID)
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.RetractOffers(orderID)
	if order.AssignedAgentID != nil {
		s.dispatcher.ReleaseAgent(*order.AssignedAgentID)
	}

	order.Status = entities.OrderCancelled
	s.pushStatus(order, "", entities.OrderCancelled)

	order.AssignedAgentID = nil
	return order, nil
}

// ActiveOrderForAgent возвращает назначенный на курьера незавершенный
// заказ.
func (s *Service) ActiveOrderForAgent(ctx context.Context, agentID string) (*entities.Order, error) {
	order, err := s.repo.GetActiveOrderByAgentID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("get active order for agent %s: %w", agentID, err)
	}
	return order, nil
}

func (s *Service) transitionShopOrder(ctx context.Context, orderID string, shopOrderID string, to entities.OrderStatusType) (*entities.Order, error) {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}

	return s.applyShopOrderStatus(ctx, order, shopOrderID, to)
}

// applyShopOrderStatus применяет переход к части заказа и пересчитывает
// статус заказа целиком в одной транзакции. Вызывающий держит замок
// заказа.
func (s *Service) applyShopOrderStatus(ctx context.Context, order *entities.Order, shopOrderID string, to entities.OrderStatusType) (*entities.Order, error) {
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("order %s is %s: %w", order.ID, order.Status, ErrInvalidTransition)
	}

	shopOrder := order.ShopOrderByID(shopOrderID)
	if shopOrder == nil {
		return nil, fmt.Errorf("order %s has no shop order %s: %w", order.ID, shopOrderID, ErrShopOrderNotFound)
	}
	if !canTransition(shopOrder.Status, to) {
		return nil, fmt.Errorf("shop order %s: %s -> %s: %w", shopOrderID, shopOrder.Status, to, ErrInvalidTransition)
	}

	shopOrder.Status = to
	derived := order.DerivedStatus()

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateShopOrderStatus(ctx, shopOrderID, to); err != nil {
			return fmt.Errorf("update shop order %s status: %w", shopOrderID, err)
		}
		if derived != order.Status {
			if err := s.repo.UpdateOrderStatus(ctx, order.ID, derived); err != nil {
				return fmt.Errorf("update order %s status: %w", order.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = derived
	s.pushStatus(order, shopOrderID, to)
	return order, nil
}

// pushStatus уведомляет покупателя и назначенного курьера, best-effort.
func (s *Service) pushStatus(order *entities.Order, shopOrderID string, status entities.OrderStatusType) {
	event := entities.OrderStatusChangedEvent{
		OrderID:     order.ID,
		ShopOrderID: shopOrderID,
		Status:      status.String(),
	}

	_ = s.presence.Send(order.CustomerID, entities.EventOrderStatusChanged, event)
	if order.AssignedAgentID != nil {
		_ = s.presence.Send(*order.AssignedAgentID, entities.EventOrderStatusChanged, event)
	}
}
