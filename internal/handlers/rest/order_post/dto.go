package order_post

type OrderCreate struct {
	CustomerID      string            `json:"customerId"`
	DeliveryAddress string            `json:"deliveryAddress"`
	Carts           []OrderCreateCart `json:"carts"`
}

type OrderCreateCart struct {
	ShopID string                `json:"shopId"`
	Items  []OrderCreateCartItem `json:"items"`
}

type OrderCreateCartItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type OrderCreateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int64  `json:"total"`
}
