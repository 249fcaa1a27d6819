package geofeed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dispatch/internal/entities"
)

// Service принимает отчеты о позиции курьеров. Кэш позиций принадлежит
// этому компоненту: last-write-wins, истории нет. Отчеты разных курьеров
// идут параллельно, сериализация нужна только между записью и чтением
// позиции одного курьера.
type Service struct {
	presence    Presence
	actors      ActorSource
	assignments AssignmentIndex
	freshness   time.Duration
	now         func() time.Time

	mu        sync.RWMutex
	locations map[string]entities.AgentLocation
	verified  map[string]struct{}
}

func New(
	presence Presence,
	actors ActorSource,
	assignments AssignmentIndex,
	freshness time.Duration,
) *Service {
	return &Service{
		presence:    presence,
		actors:      actors,
		assignments: assignments,
		freshness:   freshness,
		now:         time.Now,
		locations:   make(map[string]entities.AgentLocation),
		verified:    make(map[string]struct{}),
	}
}

// ReportLocation валидирует и записывает позицию курьера. Позиция
// свободного курьера тоже кэшируется - она нужна для ранжирования при
// диспетчеризации. Если у курьера есть активный заказ, позиция
// дополнительно пушится покупателю этого заказа (best-effort).
func (s *Service) ReportLocation(ctx context.Context, agentID string, latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: lat=%f lon=%f", ErrInvalidLocation, latitude, longitude)
	}

	if err := s.ensureAgent(ctx, agentID); err != nil {
		return err
	}

	location := entities.AgentLocation{
		AgentID:   agentID,
		Latitude:  latitude,
		Longitude: longitude,
		UpdatedAt: s.now(),
	}

	s.mu.Lock()
	s.locations[agentID] = location
	s.mu.Unlock()

	orderID, customerID, ok := s.assignments.ActiveAssignment(agentID)
	if !ok {
		return nil
	}

	// пуш best-effort: офлайн покупатель не ошибка для курьера
	_ = s.presence.Send(customerID, entities.EventLocationUpdate, entities.LocationUpdateEvent{
		OrderID:   orderID,
		Latitude:  latitude,
		Longitude: longitude,
	})
	return nil
}

// Location возвращает последнюю известную позицию курьера.
func (s *Service) Location(agentID string) (entities.AgentLocation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	location, ok := s.locations[agentID]
	return location, ok
}

// FreshLocations возвращает позиции, обновленные в пределах окна свежести.
// Протухшие позиции не участвуют в ранжировании кандидатов.
func (s *Service) FreshLocations() []entities.AgentLocation {
	deadline := s.now().Add(-s.freshness)

	s.mu.RLock()
	defer s.mu.RUnlock()

	fresh := make([]entities.AgentLocation, 0, len(s.locations))
	for _, location := range s.locations {
		if location.UpdatedAt.Before(deadline) {
			continue
		}
		fresh = append(fresh, location)
	}
	return fresh
}

// ensureAgent проверяет роль актора один раз, дальше отчеты этого курьера
// не ходят в хранилище.
func (s *Service) ensureAgent(ctx context.Context, agentID string) error {
	s.mu.RLock()
	_, ok := s.verified[agentID]
	s.mu.RUnlock()
	if ok {
		return nil
	}

	actor, err := s.actors.GetActorByID(ctx, agentID)
	if err != nil {
		return fmt.Errorf("get actor %s: %w", agentID, err)
	}
	if actor.Role != entities.RoleDeliveryAgent {
		return fmt.Errorf("%w: %s has role %s", ErrNotDeliveryAgent, agentID, actor.Role)
	}

	s.mu.Lock()
	s.verified[agentID] = struct{}{}
	s.mu.Unlock()
	return nil
}
