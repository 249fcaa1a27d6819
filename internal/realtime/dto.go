package realtime

import (
	"encoding/json"
	"time"

	"dispatch/internal/entities"
)

// Входящие команды протокола.
const (
	CommandIdentity           = "identity"
	CommandReportLocation     = "reportLocation"
	CommandAcceptAssignment   = "acceptAssignment"
	CommandSendDeliveryOtp    = "sendDeliveryOtp"
	CommandVerifyDeliveryOtp  = "verifyDeliveryOtp"
	CommandGetAssignments     = "getAssignments"
	CommandGetCurrentOrder    = "getCurrentOrder"
	CommandGetTodayDeliveries = "getTodayDeliveries"
)

// Ответные события на команды. Push-события объявлены в entities.
const (
	eventError              = "error"
	eventIdentified         = "identified"
	eventAssignmentAccepted = "assignmentAccepted"
	eventOtpSent            = "otpSent"
	eventOtpVerified        = "otpVerified"
	eventAssignments        = "assignments"
	eventCurrentOrder       = "currentOrder"
	eventTodayDeliveries    = "todayDeliveries"
)

// Envelope - кадр протокола в обе стороны: имя команды или события плюс
// полезная нагрузка.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type identityPayload struct {
	UserID string `json:"userId"`
}

type reportLocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type acceptAssignmentPayload struct {
	OrderID string `json:"orderId"`
}

type sendOtpPayload struct {
	OrderID     string `json:"orderId"`
	ShopOrderID string `json:"shopOrderId"`
}

type verifyOtpPayload struct {
	OrderID     string `json:"orderId"`
	ShopOrderID string `json:"shopOrderId"`
	Otp         string `json:"otp"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type offerDTO struct {
	OrderID         string    `json:"orderId"`
	ShopOrderID     string    `json:"shopOrderId"`
	ShopName        string    `json:"shopName"`
	DeliveryAddress string    `json:"deliveryAddress"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

type orderItemDTO struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type shopOrderDTO struct {
	ID       string         `json:"id"`
	ShopID   string         `json:"shopId"`
	ShopName string         `json:"shopName"`
	Status   string         `json:"status"`
	Subtotal int64          `json:"subtotal"`
	Items    []orderItemDTO `json:"items"`
}

type orderDTO struct {
	ID              string         `json:"id"`
	CustomerID      string         `json:"customerId"`
	Status          string         `json:"status"`
	DeliveryAddress string         `json:"deliveryAddress"`
	Latitude        float64        `json:"latitude"`
	Longitude       float64        `json:"longitude"`
	Total           int64          `json:"total"`
	ShopOrders      []shopOrderDTO `json:"shopOrders"`
}

type hourBucketDTO struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

func toOfferDTOs(offers []entities.AssignmentOffer) []offerDTO {
	dtos := make([]offerDTO, 0, len(offers))
	for _, offer := range offers {
		dtos = append(dtos, offerDTO{
			OrderID:         offer.OrderID,
			ShopOrderID:     offer.ShopOrderID,
			ShopName:        offer.ShopName,
			DeliveryAddress: offer.DeliveryAddress.Text,
			ExpiresAt:       offer.ExpiresAt,
		})
	}
	return dtos
}

func toOrderDTO(order *entities.Order) *orderDTO {
	if order == nil {
		return nil
	}

	dto := &orderDTO{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		Status:          order.Status.String(),
		DeliveryAddress: order.DeliveryAddress.Text,
		Latitude:        order.DeliveryAddress.Point.Latitude,
		Longitude:       order.DeliveryAddress.Point.Longitude,
		Total:           order.Total,
	}
	for _, shopOrder := range order.ShopOrders {
		items := make([]orderItemDTO, 0, len(shopOrder.Items))
		for _, item := range shopOrder.Items {
			items = append(items, orderItemDTO(item))
		}
		dto.ShopOrders = append(dto.ShopOrders, shopOrderDTO{
			ID:       shopOrder.ID,
			ShopID:   shopOrder.ShopID,
			ShopName: shopOrder.ShopName,
			Status:   shopOrder.Status.String(),
			Subtotal: shopOrder.Subtotal,
			Items:    items,
		})
	}
	return dto
}

func toHourBucketDTOs(buckets []entities.HourBucket) []hourBucketDTO {
	dtos := make([]hourBucketDTO, 0, len(buckets))
	for _, bucket := range buckets {
		dtos = append(dtos, hourBucketDTO(bucket))
	}
	return dtos
}
