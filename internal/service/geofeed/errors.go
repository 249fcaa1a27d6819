package geofeed

import "errors"

var (
	ErrInvalidLocation  = errors.New("invalid location")
	ErrNotDeliveryAgent = errors.New("actor is not a delivery agent")
)
