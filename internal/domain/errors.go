package domain

import "errors"

var (
	ErrShopNotFound  = errors.New("shop not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")

	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// Admission rejections, in check order.
	ErrShopClosed         = errors.New("shop is currently closed")
	ErrNotAcceptingOrders = errors.New("shop is not accepting orders at the moment")
	ErrOrderLimitReached  = errors.New("shop has reached its daily order limit")

	ErrInvalidTransition = errors.New("invalid status transition")

	ErrOrderNotCompleted = errors.New("order is not completed")
	ErrAlreadyReviewed   = errors.New("order already reviewed")

	// ErrOrderNumberTaken signals a unique-constraint hit during creation;
	// the caller retries with a fresh suffix.
	ErrOrderNumberTaken = errors.New("order number already exists")
	// ErrOrderNumberExhausted is returned when the bounded retry runs out.
	ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")
)
