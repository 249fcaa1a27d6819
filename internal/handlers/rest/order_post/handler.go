package order_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/geocode"
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
	var orderCreateDTO OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	input := order.CreateOrderInput{
		CustomerID:      orderCreateDTO.CustomerID,
		DeliveryAddress: orderCreateDTO.DeliveryAddress,
	}
	for _, cart := range orderCreateDTO.Carts {
		items := make([]entities.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			items = append(items, entities.OrderItem{
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}
		input.Carts = append(input.Carts, order.CartInput{
			ShopID: cart.ShopID,
			Items:  items,
		})
	}

	orderEntity, err := h.service.CreateOrder(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidOrder),
			errors.Is(err, order.ErrShopNotFound),
			errors.Is(err, geocode.ErrAddressNotFound):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := OrderCreateResponse{
		ID:     orderEntity.ID,
		Status: orderEntity.Status.String(),
		Total:  orderEntity.Total,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
