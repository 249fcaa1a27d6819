package dispatch

import "errors"

var (
	ErrNoCandidates    = errors.New("no delivery agents available")
	ErrOfferNotFound   = errors.New("assignment offer not found")
	ErrAlreadyAssigned = errors.New("order is already assigned")
	ErrAgentBusy       = errors.New("agent already has an active assignment")
)
