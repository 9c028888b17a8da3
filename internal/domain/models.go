package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

// Actor is the authenticated caller. Every service call takes it explicitly;
// nothing reads identity from ambient request state.
type Actor struct {
	UserID   uuid.UUID
	Name     string
	Phone    string
	Role     Role
	Approved bool
}

type User struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Password   string     `json:"-"`
	Role       Role       `json:"role"`
	Approved   bool       `json:"approved"`
	ShopName   string     `json:"shop_name,omitempty"`
	Location   string     `json:"location,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

type MealType struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Available bool      `json:"available"`
}

type Curry struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Available bool      `json:"available"`
}

type CustomizationType string

const (
	CustomizationProtein CustomizationType = "protein"
	CustomizationCurry   CustomizationType = "curry"
	CustomizationExtra   CustomizationType = "extra"
)

type Customization struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	Type      CustomizationType `json:"type"`
	Available bool              `json:"available"`
}

type Shop struct {
	ID         uuid.UUID `json:"id"`
	MerchantID uuid.UUID `json:"merchant_id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Phone      string    `json:"phone"`

	IsOpen          bool   `json:"is_open"`
	AcceptingOrders bool   `json:"accepting_orders"`
	ClosingTime     string `json:"closing_time,omitempty"`
	// OrderLimit of zero means unlimited.
	OrderLimit     int `json:"order_limit"`
	OrdersReceived int `json:"orders_received"`

	TotalOrders  int     `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"review_count"`

	MealTypes      []MealType      `json:"meal_types"`
	Curries        []Curry         `json:"curries"`
	Customizations []Customization `json:"customizations"`

	CreatedAt time.Time `json:"created_at"`
}

// ShopSettings carries the merchant-editable operational flags. Nil means
// "leave unchanged".
type ShopSettings struct {
	IsOpen          *bool   `json:"is_open,omitempty"`
	AcceptingOrders *bool   `json:"accepting_orders,omitempty"`
	OrderLimit      *int    `json:"order_limit,omitempty"`
	ClosingTime     *string `json:"closing_time,omitempty"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentOnline
}

// OrderCurry and OrderCustomization are by-value snapshots of catalog entries
// taken at order creation; later catalog edits never change them.
type OrderCurry struct {
	CurryID uuid.UUID `json:"curry_id"`
	Name    string    `json:"name"`
}

type OrderCustomization struct {
	CustomizationID uuid.UUID         `json:"customization_id"`
	Name            string            `json:"name"`
	Price           float64           `json:"price"`
	Type            CustomizationType `json:"type"`
	Quantity        int               `json:"quantity"`
}

type OrderItem struct {
	ID                  uuid.UUID            `json:"id"`
	MealTypeID          uuid.UUID            `json:"meal_type_id"`
	MealTypeName        string               `json:"meal_type_name"`
	MealTypePrice       float64              `json:"meal_type_price"`
	Curries             []OrderCurry         `json:"curries"`
	Customizations      []OrderCustomization `json:"customizations"`
	Subtotal            float64              `json:"subtotal"`
	SpecialInstructions string               `json:"special_instructions,omitempty"`
}

type Order struct {
	ID          uuid.UUID `json:"id"`
	OrderNumber string    `json:"order_number"`

	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	MerchantID    uuid.UUID `json:"merchant_id"`
	MerchantName  string    `json:"merchant_name"`
	ShopID        uuid.UUID `json:"shop_id"`

	Items []OrderItem `json:"items"`
	Total float64     `json:"total"`

	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMethod PaymentMethod `json:"payment_method"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	PreparingAt *time.Time `json:"preparing_at,omitempty"`
	ReadyAt     *time.Time `json:"ready_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	EstimatedPickupTime *time.Time `json:"estimated_pickup_time,omitempty"`
	Notes               string     `json:"notes,omitempty"`

	Rating *int   `json:"rating,omitempty"`
	Review string `json:"review,omitempty"`

	CancellationReason string `json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page describes the pagination echo on list responses.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
