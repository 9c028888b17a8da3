package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated    = "order_created"
	EventStatusChanged   = "status_changed"
	EventReviewSubmitted = "review_submitted"
)

// OrderEvent is the message published to Kafka after an order mutation
// commits. Consumers (analytics, notifications) live outside this repo.
type OrderEvent struct {
	Type        string      `json:"type"`
	OrderID     uuid.UUID   `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	ShopID      uuid.UUID   `json:"shop_id"`
	MerchantID  uuid.UUID   `json:"merchant_id"`
	CustomerID  uuid.UUID   `json:"customer_id"`
	Status      OrderStatus `json:"status,omitempty"`
	Total       float64     `json:"total,omitempty"`
	Rating      int         `json:"rating,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}
