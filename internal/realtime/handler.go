package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"

	"dispatch/pkg/logger"
)

// Handler апгрейдит HTTP запрос до вебсокета и запускает насосы
// соединения. Дальше жизнью соединения управляет readPump.
type Handler struct {
	log      handlerLogger
	router   *Router
	registry PresenceRegistry
	upgrader websocket.Upgrader
}

func New(log handlerLogger, router *Router, registry PresenceRegistry) *Handler {
	return &Handler{
		log:      log.With(),
		router:   router,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// аутентификация происходит командой identity, а не на апгрейде
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", logger.NewField("error", err))
		return
	}

	client := newClient(h.log, conn)
	go client.writePump()
	go client.readPump(h.router, h.registry)
}
