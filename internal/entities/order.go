package entities

import "time"

type Order struct {
	ID              string
	CustomerID      string
	ShopOrders      []ShopOrder
	DeliveryAddress Address
	Total           int64
	Status          OrderStatusType
	AssignedAgentID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ShopOrder - часть заказа, привязанная к одному магазину. У каждой части
// свой жизненный цикл: подтверждение, выдача и доставка идут независимо.
type ShopOrder struct {
	ID           string
	OrderID      string
	ShopID       string
	ShopName     string
	ShopLocation GeoPoint
	Items        []OrderItem
	Subtotal     int64
	Status       OrderStatusType
	Otp          *DeliveryOtp
}

type OrderItem struct {
	Name     string
	Price    int64
	Quantity int
}

// DeliveryOtp живет на shop order только пока доставка ждет подтверждения,
// очищается при успешной проверке или по истечении окна валидности.
type DeliveryOtp struct {
	Code     string
	IssuedAt time.Time
}

type OrderStatusType string

const (
	OrderPlaced          OrderStatusType = "placed"
	OrderConfirmedByShop OrderStatusType = "confirmedByShop"
	OrderPickedUp        OrderStatusType = "pickedUp"
	OrderDelivered       OrderStatusType = "delivered"
	OrderCancelled       OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// rank задает порядок жизненного цикла для вычисления статуса заказа
// по статусам его частей.
func (s OrderStatusType) rank() int {
	switch s {
	case OrderPlaced:
		return 0
	case OrderConfirmedByShop:
		return 1
	case OrderPickedUp:
		return 2
	case OrderDelivered:
		return 3
	default:
		return -1
	}
}

// DerivedStatus возвращает статус заказа целиком: отмена доминирует, иначе
// заказ находится в наименее продвинутом статусе среди его shop orders.
func (o *Order) DerivedStatus() OrderStatusType {
	if o.Status == OrderCancelled {
		return OrderCancelled
	}
	if len(o.ShopOrders) == 0 {
		return o.Status
	}

	least := o.ShopOrders[0].Status
	for _, so := range o.ShopOrders[1:] {
		if so.Status.rank() < least.rank() {
			least = so.Status
		}
	}
	return least
}

func (o *Order) ShopOrderByID(shopOrderID string) *ShopOrder {
	for i := range o.ShopOrders {
		if o.ShopOrders[i].ID == shopOrderID {
			return &o.ShopOrders[i]
		}
	}
	return nil
}

type OrderModify struct {
	ID              *string
	Status          *OrderStatusType
	AssignedAgentID *string
}

type ShopOrderModify struct {
	ID       *string
	Status   *OrderStatusType
	OtpCode  *string
	IssuedAt *time.Time
}
