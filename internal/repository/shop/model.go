package shop

import "time"

type ShopDB struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}
