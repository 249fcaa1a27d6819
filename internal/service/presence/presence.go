package presence

import (
	"sync"

	"dispatch/pkg/logger"
)

// Registry - реестр присутствия: actor id -> живые соединения. У одного
// актора может быть несколько соединений (несколько вкладок), Send
// рассылает событие во все. Реестр - единственный владелец состояния
// соединений, глобальных карт в пакетах нет.
type Registry struct {
	log handlerLogger

	mu     sync.RWMutex
	actors map[string]map[string]Conn // actorID -> connID -> conn
	conns  map[string]string          // connID -> actorID
}

func NewRegistry(log handlerLogger) *Registry {
	return &Registry{
		log:    log.With(logger.NewField("component", "presence")),
		actors: make(map[string]map[string]Conn),
		conns:  make(map[string]string),
	}
}

func (r *Registry) Register(actorID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// переидентификация соединения снимает старую привязку, иначе
	// прежний актор навсегда остался бы онлайн с мертвым соединением
	if prevID, ok := r.conns[conn.ID()]; ok && prevID != actorID {
		r.dropBinding(prevID, conn.ID())
	}

	bindings, ok := r.actors[actorID]
	if !ok {
		bindings = make(map[string]Conn)
		r.actors[actorID] = bindings
	}
	bindings[conn.ID()] = conn
	r.conns[conn.ID()] = actorID

	r.log.Debug("connection registered",
		logger.NewField("actor", actorID),
		logger.NewField("conn", conn.ID()),
		logger.NewField("bindings", len(bindings)),
	)
}

// Unregister удаляет ровно одно соединение, остальные привязки актора
// остаются. Повторный вызов для того же соединения - no-op.
func (r *Registry) Unregister(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	actorID, ok := r.conns[conn.ID()]
	if !ok {
		return
	}
	delete(r.conns, conn.ID())
	r.dropBinding(actorID, conn.ID())

	r.log.Debug("connection unregistered",
		logger.NewField("actor", actorID),
		logger.NewField("conn", conn.ID()),
	)
}

func (r *Registry) dropBinding(actorID string, connID string) {
	bindings := r.actors[actorID]
	delete(bindings, connID)
	if len(bindings) == 0 {
		delete(r.actors, actorID)
	}
}

// Send рассылает событие во все соединения актора, best-effort: ошибка
// отдельного соединения логируется и не прерывает рассылку. Для офлайн
// актора возвращается ErrActorOffline - вызывающие логируют и продолжают.
func (r *Registry) Send(actorID string, event string, payload interface{}) error {
	r.mu.RLock()
	bindings := make([]Conn, 0, len(r.actors[actorID]))
	for _, conn := range r.actors[actorID] {
		bindings = append(bindings, conn)
	}
	r.mu.RUnlock()

	if len(bindings) == 0 {
		return ErrActorOffline
	}

	for _, conn := range bindings {
		if err := conn.Send(event, payload); err != nil {
			r.log.Warn("push failed",
				logger.NewField("actor", actorID),
				logger.NewField("conn", conn.ID()),
				logger.NewField("event", event),
				logger.NewField("error", err),
			)
		}
	}
	return nil
}

func (r *Registry) IsOnline(actorID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.actors[actorID]) > 0
}
