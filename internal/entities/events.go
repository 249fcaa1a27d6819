package entities

// Имена push-событий вебсокет протокола. Имена и форма полезной нагрузки
// повторяют протокол клиента, поэтому camelCase.
const (
	EventNewAssignment      = "newAssignment"
	EventAssignmentTaken    = "assignmentTaken"
	EventLocationUpdate     = "locationUpdate"
	EventOrderStatusChanged = "orderStatusChanged"
	EventDeliveryOtp        = "deliveryOtp"
)

type NewAssignmentEvent struct {
	OrderID         string  `json:"orderId"`
	ShopOrderID     string  `json:"shopOrderId"`
	ShopName        string  `json:"shopName"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

type AssignmentTakenEvent struct {
	OrderID string `json:"orderId"`
}

type LocationUpdateEvent struct {
	OrderID   string  `json:"orderId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OrderStatusChangedEvent struct {
	OrderID     string `json:"orderId"`
	ShopOrderID string `json:"shopOrderId,omitempty"`
	Status      string `json:"status"`
}

// DeliveryOtpEvent показывает код покупателю, курьер его не видит и
// должен получить код лично при передаче заказа.
type DeliveryOtpEvent struct {
	OrderID     string `json:"orderId"`
	ShopOrderID string `json:"shopOrderId"`
	Code        string `json:"code"`
}
