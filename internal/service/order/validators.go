package order

import (
	"strings"

	"dispatch/internal/entities"
)

func isValidCreateOrderInput(input CreateOrderInput) bool {
	if strings.TrimSpace(input.CustomerID) == "" {
		return false
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return false
	}
	if len(input.Carts) == 0 {
		return false
	}

	for _, cart := range input.Carts {
		if strings.TrimSpace(cart.ShopID) == "" || len(cart.Items) == 0 {
			return false
		}
		for _, item := range cart.Items {
			if strings.TrimSpace(item.Name) == "" || item.Price < 0 || item.Quantity <= 0 {
				return false
			}
		}
	}
	return true
}

// canTransition описывает машину статусов: placed -> confirmedByShop ->
// pickedUp -> delivered, отмена доступна из любого нетерминального
// статуса. Назначение курьера статус не меняет.
func canTransition(from, to entities.OrderStatusType) bool {
	switch to {
	case entities.OrderConfirmedByShop:
		return from == entities.OrderPlaced
	case entities.OrderPickedUp:
		return from == entities.OrderConfirmedByShop
	case entities.OrderDelivered:
		return from == entities.OrderPickedUp
	case entities.OrderCancelled:
		return !from.IsTerminal()
	default:
		return false
	}
}
