package entities

import "time"

// AssignmentOffer - эфемерное предложение доставки. Живет только в памяти
// диспетчера между рассылкой и первым принятием, в БД не сохраняется.
type AssignmentOffer struct {
	OrderID         string
	ShopOrderID     string
	ShopID          string
	ShopName        string
	DeliveryAddress Address
	Candidates      []string
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// AgentAssignment - активная привязка курьера к заказу, как она
// зафиксирована в хранилище.
type AgentAssignment struct {
	AgentID    string
	OrderID    string
	CustomerID string
}

// HourBucket - количество доставленных заказов за часовой интервал,
// используется экраном заработка курьера.
type HourBucket struct {
	Hour  int
	Count int64
}
