package order

import "time"

type OrderDB struct {
	ID              string
	CustomerID      string
	DeliveryAddress string
	AddressLat      float64
	AddressLon      float64
	Total           int64
	Status          string
	AssignedAgentID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ShopOrderDB struct {
	ID          string
	OrderID     string
	ShopID      string
	ShopName    string
	ShopLat     float64
	ShopLon     float64
	Items       []byte
	Subtotal    int64
	Status      string
	OtpCode     *string
	OtpIssuedAt *time.Time
}
