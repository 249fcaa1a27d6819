package shop

import "dispatch/internal/entities"

func ToDomain(s *ShopDB) *entities.Shop {
	if s == nil {
		return nil
	}
	return &entities.Shop{
		ID:   s.ID,
		Name: s.Name,
		Location: entities.GeoPoint{
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		},
		CreatedAt: s.CreatedAt,
	}
}
