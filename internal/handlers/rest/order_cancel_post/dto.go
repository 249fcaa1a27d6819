package order_cancel_post

type OrderCancelResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
