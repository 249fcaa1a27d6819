package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/keymutex"
)

// Service выдает и проверяет коды подтверждения доставки. Выдача и
// проверка по одному заказу сериализуются замком по ключу заказа,
// поэтому код очищается ровно один раз и повторная проверка после
// успеха получает ErrOtpNotIssued.
type Service struct {
	repo     Repository
	presence Presence
	orders   OrderCompleter
	locks    *keymutex.KeyMutex
	length   int
	validity time.Duration
	now      func() time.Time
}

func New(
	repo Repository,
	presence Presence,
	orders OrderCompleter,
	length int,
	validity time.Duration,
) *Service {
	return &Service{
		repo:     repo,
		presence: presence,
		orders:   orders,
		locks:    keymutex.New(),
		length:   length,
		validity: validity,
		now:      time.Now,
	}
}

// Issue генерирует код для shop order, находящегося в статусе pickedUp.
// Запросить код может только назначенный на заказ курьер. Код уходит
// покупателю, курьер получает его лично при передаче заказа. Повторный
// вызов перезаписывает предыдущий код.
func (s *Service) Issue(ctx context.Context, agentID string, orderID string, shopOrderID string) error {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	order, shopOrder, err := s.loadShopOrder(ctx, agentID, orderID, shopOrderID)
	if err != nil {
		return err
	}
	if shopOrder.Status != entities.OrderPickedUp {
		return fmt.Errorf("shop order %s is %s: %w", shopOrderID, shopOrder.Status, ErrNotPickedUp)
	}

	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	issued := entities.DeliveryOtp{Code: code, IssuedAt: s.now()}
	if err := s.repo.SetShopOrderOtp(ctx, shopOrderID, issued); err != nil {
		return fmt.Errorf("store otp for shop order %s: %w", shopOrderID, err)
	}

	// доставка кода покупателю best-effort: офлайн покупатель увидит
	// код в приложении при следующем подключении
	_ = s.presence.Send(order.CustomerID, entities.EventDeliveryOtp, entities.DeliveryOtpEvent{
		OrderID:     orderID,
		ShopOrderID: shopOrderID,
		Code:        code,
	})
	return nil
}

// Verify сверяет код, предъявленный курьером. При успехе код очищается
// и shop order переводится в delivered.
func (s *Service) Verify(ctx context.Context, agentID string, orderID string, shopOrderID string, submitted string) error {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	_, shopOrder, err := s.loadShopOrder(ctx, agentID, orderID, shopOrderID)
	if err != nil {
		return err
	}
	if shopOrder.Otp == nil {
		return fmt.Errorf("shop order %s: %w", shopOrderID, ErrOtpNotIssued)
	}
	if s.now().Sub(shopOrder.Otp.IssuedAt) > s.validity {
		// протухший код удаляется сразу, не дожидаясь перевыпуска
		if err := s.repo.ClearShopOrderOtp(ctx, shopOrderID); err != nil {
			return fmt.Errorf("clear expired otp for shop order %s: %w", shopOrderID, err)
		}
		return fmt.Errorf("shop order %s: %w", shopOrderID, ErrOtpExpired)
	}
	if subtle.ConstantTimeCompare([]byte(shopOrder.Otp.Code), []byte(submitted)) != 1 {
		return fmt.Errorf("shop order %s: %w", shopOrderID, ErrOtpMismatch)
	}

	if err := s.repo.ClearShopOrderOtp(ctx, shopOrderID); err != nil {
		return fmt.Errorf("clear otp for shop order %s: %w", shopOrderID, err)
	}

	if err := s.orders.CompleteDelivery(ctx, orderID, shopOrderID); err != nil {
		return fmt.Errorf("complete delivery of shop order %s: %w", shopOrderID, err)
	}
	return nil
}

func (s *Service) loadShopOrder(ctx context.Context, agentID string, orderID string, shopOrderID string) (*entities.Order, *entities.ShopOrder, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order.AssignedAgentID == nil || *order.AssignedAgentID != agentID {
		return nil, nil, fmt.Errorf("agent %s on order %s: %w", agentID, orderID, ErrNotAssignedAgent)
	}

	shopOrder := order.ShopOrderByID(shopOrderID)
	if shopOrder == nil {
		return nil, nil, fmt.Errorf("order %s has no shop order %s: %w", orderID, shopOrderID, ErrShopOrderNotFound)
	}
	return order, shopOrder, nil
}

func (s *Service) generateCode() (string, error) {
	digits := make([]byte, s.length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
