package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/keymutex"
)

type assignment struct {
	orderID    string
	customerID string
}

// Service - диспетчер назначений. Предложения доставки эфемерны и живут
// только в памяти, привязка курьера к заказу фиксируется в хранилище
// условным обновлением. Принятия одного заказа сериализуются замком по
// ключу заказа, принятия разных заказов идут параллельно.
type Service struct {
	repo      Repository
	presence  Presence
	locations Locations
	locks     *keymutex.KeyMutex
	topK      int
	offerTTL  time.Duration
	now       func() time.Time

	mu          sync.RWMutex
	offers      map[string][]entities.AssignmentOffer // orderID -> предложения по shop orders
	assignments map[string]assignment                 // agentID -> активная привязка
}

func New(
	repo Repository,
	presence Presence,
	locations Locations,
	topK int,
	offerTTL time.Duration,
) *Service {
	return &Service{
		repo:        repo,
		presence:    presence,
		locations:   locations,
		locks:       keymutex.New(),
		topK:        topK,
		offerTTL:    offerTTL,
		now:         time.Now,
		offers:      make(map[string][]entities.AssignmentOffer),
		assignments: make(map[string]assignment),
	}
}

// RestoreAssignments восстанавливает индекс активных привязок из
// хранилища после рестарта процесса. Без него занятый курьер проходил
// бы ранжирование, а покупатель переставал получать locationUpdate.
// Предложения не восстанавливаются: они эфемерны, заказы без курьера
// перевыпустит фоновая задача.
func (s *Service) RestoreAssignments(ctx context.Context) error {
	active, err := s.repo.GetActiveAssignments(ctx)
	if err != nil {
		return fmt.Errorf("restore assignments: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range active {
		s.assignments[a.AgentID] = assignment{orderID: a.OrderID, customerID: a.CustomerID}
	}
	return nil
}

// DispatchOrder рассылает предложения доставки ближайшим свободным
// курьерам. Для каждого shop order кандидаты ранжируются по расстоянию
// до магазина. Отсутствие кандидатов не фатально: заказ остается без
// курьера, фоновая задача повторит рассылку.
func (s *Service) DispatchOrder(ctx context.Context, order *entities.Order) error {
	if order.AssignedAgentID != nil || order.Status.IsTerminal() {
		return nil
	}

	now := s.now()
	offers := make([]entities.AssignmentOffer, 0, len(order.ShopOrders))

	for _, shopOrder := range order.ShopOrders {
		if shopOrder.Status.IsTerminal() {
			continue
		}

		candidates := s.rankCandidates(shopOrder.ShopLocation)
		if len(candidates) == 0 {
			continue
		}

		offers = append(offers, entities.AssignmentOffer{
			OrderID:         order.ID,
			ShopOrderID:     shopOrder.ID,
			ShopID:          shopOrder.ShopID,
			ShopName:        shopOrder.ShopName,
			DeliveryAddress: order.DeliveryAddress,
			Candidates:      candidates,
			CreatedAt:       now,
			ExpiresAt:       now.Add(s.offerTTL),
		})
	}

	if len(offers) == 0 {
		return fmt.Errorf("dispatch order %s: %w", order.ID, ErrNoCandidates)
	}

	s.mu.Lock()
	s.offers[order.ID] = offers
	s.mu.Unlock()

	for _, offer := range offers {
		shopOrder := order.ShopOrderByID(offer.ShopOrderID)
		event := entities.NewAssignmentEvent{
			OrderID:         offer.OrderID,
			ShopOrderID:     offer.ShopOrderID,
			ShopName:        offer.ShopName,
			DeliveryAddress: offer.DeliveryAddress.Text,
			Latitude:        shopOrder.ShopLocation.Latitude,
			Longitude:       shopOrder.ShopLocation.Longitude,
		}
		for _, agentID := range offer.Candidates {
			// реестр присутствия сам логирует неудачные доставки
			_ = s.presence.Send(agentID, entities.EventNewAssignment, event)
		}
	}

	return nil
}

// Accept принимает предложение доставки. Первый курьер забирает заказ
// целиком: все предложения заказа снимаются, остальным кандидатам
// уходит assignmentTaken. Побеждает тот, чье условное обновление прошло
// в хранилище.
func (s *Service) Accept(ctx context.Context, agentID string, orderID string) error {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	s.mu.RLock()
	_, busy := s.assignments[agentID]
	offers, found := s.offers[orderID]
	s.mu.RUnlock()

	if busy {
		return fmt.Errorf("agent %s: %w", agentID, ErrAgentBusy)
	}
	if !found {
		return fmt.Errorf("order %s: %w", orderID, ErrOfferNotFound)
	}
	if !s.isCandidate(offers, agentID) {
		return fmt.Errorf("agent %s is not offered order %s: %w", agentID, orderID, ErrOfferNotFound)
	}
	if s.allExpired(offers) {
		s.retireOffers(orderID)
		return fmt.Errorf("order %s: offer expired: %w", orderID, ErrOfferNotFound)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order.Status.IsTerminal() {
		s.retireOffers(orderID)
		return fmt.Errorf("order %s is %s: %w", orderID, order.Status, ErrOfferNotFound)
	}

	// бронь курьера атомарна с проверкой занятости: параллельное
	// принятие другого заказа получит ErrAgentBusy еще до обращения
	// к хранилищу
	s.mu.Lock()
	if _, stillBusy := s.assignments[agentID]; stillBusy {
		s.mu.Unlock()
		return fmt.Errorf("agent %s: %w", agentID, ErrAgentBusy)
	}
	s.assignments[agentID] = assignment{orderID: orderID, customerID: order.CustomerID}
	s.mu.Unlock()

	if err := s.repo.AssignAgent(ctx, orderID, agentID); err != nil {
		s.mu.Lock()
		delete(s.assignments, agentID)
		s.mu.Unlock()
		return fmt.Errorf("assign agent %s to order %s: %w", agentID, orderID, err)
	}

	s.mu.Lock()
	delete(s.offers, orderID)
	s.mu.Unlock()

	taken := entities.AssignmentTakenEvent{OrderID: orderID}
	notified := map[string]struct{}{agentID: {}}
	for _, offer := range offers {
		for _, candidateID := range offer.Candidates {
			if _, ok := notified[candidateID]; ok {
				continue
			}
			notified[candidateID] = struct{}{}
			_ = s.presence.Send(candidateID, entities.EventAssignmentTaken, taken)
		}
	}

	return nil
}

// PendingOffers возвращает непротухшие предложения, адресованные курьеру.
func (s *Service) PendingOffers(agentID string) []entities.AssignmentOffer {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []entities.AssignmentOffer
	for _, offers := range s.offers {
		for _, offer := range offers {
			if offer.ExpiresAt.Before(now) {
				continue
			}
			for _, candidateID := range offer.Candidates {
				if candidateID == agentID {
					pending = append(pending, offer)
					break
				}
			}
		}
	}
	return pending
}

// ActiveAssignment возвращает активную привязку курьера.
func (s *Service) ActiveAssignment(agentID string) (string, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assignments[agentID]
	return a.orderID, a.customerID, ok
}

// ReleaseAgent снимает привязку: курьер снова доступен для предложений.
// Вызывается после доставки всех частей заказа либо при отмене.
func (s *Service) ReleaseAgent(agentID string) {
	s.mu.Lock()
	delete(s.assignments, agentID)
	s.mu.Unlock()
}

// RetractOffers снимает предложения заказа и рассылает кандидатам
// assignmentTaken. Вызывается при отмене заказа.
func (s *Service) RetractOffers(orderID string) {
	candidates := s.retireOffers(orderID)

	taken := entities.AssignmentTakenEvent{OrderID: orderID}
	for _, candidateID := range candidates {
		_ = s.presence.Send(candidateID, entities.EventAssignmentTaken, taken)
	}
}

// SweepExpiredOffers удаляет протухшие предложения и повторяет рассылку
// для заказов, оставшихся без курьера.
func (s *Service) SweepExpiredOffers(ctx context.Context) error {
	now := s.now()

	s.mu.RLock()
	expired := make([]string, 0)
	for orderID, offers := range s.offers {
		if s.allExpiredAt(offers, now) {
			expired = append(expired, orderID)
		}
	}
	s.mu.RUnlock()

	for _, orderID := range expired {
		if err := s.redispatch(ctx, orderID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) redispatch(ctx context.Context, orderID string) error {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	s.mu.Lock()
	offers, found := s.offers[orderID]
	if !found || !s.allExpired(offers) {
		// заказ успели принять или предложения уже перевыпущены
		s.mu.Unlock()
		return nil
	}
	delete(s.offers, orderID)
	s.mu.Unlock()

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order %s: %w", orderID, err)
	}

	if err := s.DispatchOrder(ctx, order); err != nil {
		// кандидатов по-прежнему нет, попробуем в следующий проход
		return nil
	}
	return nil
}

// rankCandidates выбирает до topK свободных онлайн курьеров со свежей
// позицией, ближайших к точке магазина. При равном расстоянии раньше
// идет курьер с более давней позицией, затем лексикографически по ID.
func (s *Service) rankCandidates(shop entities.GeoPoint) []string {
	fresh := s.locations.FreshLocations()

	s.mu.RLock()
	available := make([]entities.AgentLocation, 0, len(fresh))
	for _, location := range fresh {
		if _, assigned := s.assignments[location.AgentID]; assigned {
			continue
		}
		available = append(available, location)
	}
	s.mu.RUnlock()

	online := available[:0]
	for _, location := range available {
		if s.presence.IsOnline(location.AgentID) {
			online = append(online, location)
		}
	}

	sort.Slice(online, func(i, j int) bool {
		di := shop.DistanceKm(online[i].Point())
		dj := shop.DistanceKm(online[j].Point())
		if di != dj {
			return di < dj
		}
		if !online[i].UpdatedAt.Equal(online[j].UpdatedAt) {
			return online[i].UpdatedAt.Before(online[j].UpdatedAt)
		}
		return online[i].AgentID < online[j].AgentID
	})

	limit := s.topK
	if limit > len(online) {
		limit = len(online)
	}

	candidates := make([]string, 0, limit)
	for _, location := range online[:limit] {
		candidates = append(candidates, location.AgentID)
	}
	return candidates
}

// retireOffers удаляет предложения заказа и возвращает уникальных
// кандидатов снятых предложений.
func (s *Service) retireOffers(orderID string) []string {
	s.mu.Lock()
	offers := s.offers[orderID]
	delete(s.offers, orderID)
	s.mu.Unlock()

	seen := make(map[string]struct{})
	candidates := make([]string, 0)
	for _, offer := range offers {
		for _, candidateID := range offer.Candidates {
			if _, ok := seen[candidateID]; ok {
				continue
			}
			seen[candidateID] = struct{}{}
			candidates = append(candidates, candidateID)
		}
	}
	return candidates
}

func (s *Service) isCandidate(offers []entities.AssignmentOffer, agentID string) bool {
	for _, offer := range offers {
		for _, candidateID := range offer.Candidates {
			if candidateID == agentID {
				return true
			}
		}
	}
	return false
}

func (s *Service) allExpired(offers []entities.AssignmentOffer) bool {
	return s.allExpiredAt(offers, s.now())
}

func (s *Service) allExpiredAt(offers []entities.AssignmentOffer, now time.Time) bool {
	for _, offer := range offers {
		if !offer.ExpiresAt.Before(now) {
			return false
		}
	}
	return len(offers) > 0
}
