package order_confirm_post

type ShopOrderConfirm struct {
	ShopOrderID string `json:"shopOrderId"`
}

type OrderStatusResponse struct {
	ID         string                    `json:"id"`
	Status     string                    `json:"status"`
	ShopOrders []ShopOrderStatusResponse `json:"shopOrders"`
}

type ShopOrderStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
