package entities

import "time"

type Shop struct {
	ID        string
	Name      string
	Location  GeoPoint
	CreatedAt time.Time
}
