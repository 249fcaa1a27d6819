package otp

import "errors"

var (
	ErrOtpNotIssued      = errors.New("otp is not issued")
	ErrOtpExpired        = errors.New("otp is expired")
	ErrOtpMismatch       = errors.New("otp does not match")
	ErrNotAssignedAgent  = errors.New("caller is not the assigned agent")
	ErrNotPickedUp       = errors.New("shop order is not picked up")
	ErrShopOrderNotFound = errors.New("shop order not found")
)
