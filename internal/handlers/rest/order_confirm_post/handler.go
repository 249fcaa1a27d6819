package order_confirm_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"dispatch/internal/entities"
	"dispatch/internal/service/order"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var confirmDTO ShopOrderConfirm
	err := json.NewDecoder(r.Body).Decode(&confirmDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	orderEntity, err := h.service.ConfirmShopOrder(r.Context(), orderID, confirmDTO.ShopOrderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound),
			errors.Is(err, order.ErrShopOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, order.ErrInvalidTransition):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(toResponse(orderEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func toResponse(orderEntity *entities.Order) OrderStatusResponse {
	response := OrderStatusResponse{
		ID:     orderEntity.ID,
		Status: orderEntity.Status.String(),
	}
	for _, shopOrder := range orderEntity.ShopOrders {
		response.ShopOrders = append(response.ShopOrders, ShopOrderStatusResponse{
			ID:     shopOrder.ID,
			Status: shopOrder.Status.String(),
		})
	}
	return response
}
