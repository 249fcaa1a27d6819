package order_pickup_post

type ShopOrderPickup struct {
	AgentID     string `json:"agentId"`
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
