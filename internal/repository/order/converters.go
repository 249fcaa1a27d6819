package order

import (
	"encoding/json"
	"fmt"

	"dispatch/internal/entities"
)

func ToDomain(o *OrderDB, shopOrders []ShopOrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	orderEntity := &entities.Order{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		DeliveryAddress: entities.Address{
			Text: o.DeliveryAddress,
			Point: entities.GeoPoint{
				Latitude:  o.AddressLat,
				Longitude: o.AddressLon,
			},
		},
		Total:           o.Total,
		Status:          entities.OrderStatusType(o.Status),
		AssignedAgentID: o.AssignedAgentID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}

	orderEntity.ShopOrders = make([]entities.ShopOrder, 0, len(shopOrders))
	for i := range shopOrders {
		shopOrderEntity, err := toShopOrderDomain(&shopOrders[i])
		if err != nil {
			return nil, err
		}
		orderEntity.ShopOrders = append(orderEntity.ShopOrders, *shopOrderEntity)
	}

	return orderEntity, nil
}

func toShopOrderDomain(s *ShopOrderDB) (*entities.ShopOrder, error) {
	var items []entities.OrderItem
	if len(s.Items) > 0 {
		if err := json.Unmarshal(s.Items, &items); err != nil {
			return nil, fmt.Errorf("decode shop order %s items: %w", s.ID, err)
		}
	}

	shopOrderEntity := &entities.ShopOrder{
		ID:       s.ID,
		OrderID:  s.OrderID,
		ShopID:   s.ShopID,
		ShopName: s.ShopName,
		ShopLocation: entities.GeoPoint{
			Latitude:  s.ShopLat,
			Longitude: s.ShopLon,
		},
		Items:    items,
		Subtotal: s.Subtotal,
		Status:   entities.OrderStatusType(s.Status),
	}

	if s.OtpCode != nil && s.OtpIssuedAt != nil {
		shopOrderEntity.Otp = &entities.DeliveryOtp{
			Code:     *s.OtpCode,
			IssuedAt: *s.OtpIssuedAt,
		}
	}

	return shopOrderEntity, nil
}

func itemsJSON(items []entities.OrderItem) ([]byte, error) {
	if items == nil {
		items = []entities.OrderItem{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode shop order items: %w", err)
	}
	return encoded, nil
}
