package entities

import (
	"math"
	"time"
)

type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm считает расстояние по прямой (haversine). Для ранжирования
// кандидатов этого достаточно, маршрутизация не требуется.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	const earthRadiusKm = 6371.0

	lat1 := p.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - p.Latitude) * math.Pi / 180
	dLon := (other.Longitude - p.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

type Address struct {
	Text  string
	Point GeoPoint
}

// AgentLocation - последняя известная позиция курьера. Перезаписывается
// каждым отчетом, история не хранится.
type AgentLocation struct {
	AgentID   string
	Latitude  float64
	Longitude float64
	UpdatedAt time.Time
}

func (l AgentLocation) Point() GeoPoint {
	return GeoPoint{Latitude: l.Latitude, Longitude: l.Longitude}
}
