package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mealbox/internal/domain"
)

const (
	defaultPageLimit  = 10
	merchantPageLimit = 20
	maxPageLimit      = 100
)

type CreateOrderInput struct {
	ShopID        uuid.UUID            `json:"shop_id"`
	Items         []domain.OrderItem   `json:"items"`
	Total         float64              `json:"total"`
	Notes         string               `json:"notes,omitempty"`
	PaymentMethod domain.PaymentMethod `json:"payment_method,omitempty"`
}

type OrderService struct {
	orders    OrderRepository
	shops     ShopRepository
	publisher EventPublisher
	qrEncoder QRGenerator
	log       *logrus.Logger

	now  func() time.Time
	intn func(n int) int
}

func NewOrderService(orders OrderRepository, shops ShopRepository, publisher EventPublisher, qr QRGenerator, log *logrus.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		shops:     shops,
		publisher: publisher,
		qrEncoder: qr,
		log:       log,
		now:       time.Now,
		intn:      defaultIntn,
	}
}

// Create runs the admission gate, then persists the order with its snapshots
// in one transaction. The shop's capacity slot is reserved by a conditional
// increment inside that transaction, so two concurrent orders on the last
// slot cannot both succeed.
func (s *OrderService) Create(ctx context.Context, actor domain.Actor, input CreateOrderInput) (*domain.Order, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.ErrForbidden
	}

	shop, err := s.shops.GetShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}

	method := input.PaymentMethod
	if method == "" {
		method = domain.PaymentCash
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, input.PaymentMethod)
	}

	order := &domain.Order{
		ID:            uuid.New(),
		CustomerID:    actor.UserID,
		CustomerName:  actor.Name,
		CustomerPhone: actor.Phone,
		MerchantID:    shop.MerchantID,
		MerchantName:  shop.Name,
		ShopID:        shop.ID,
		Items:         input.Items,
		Total:         input.Total,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: method,
		Notes:         input.Notes,
	}
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
	}

	if err := Admit(shop, order); err != nil {
		return nil, err
	}

	// Timestamp-derived numbers collide under load; retry with a fresh
	// random suffix, bounded.
	var created bool
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = GenerateOrderNumber(s.now(), s.intn)
		err = s.orders.CreateOrder(ctx, order)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, domain.ErrOrderNumberTaken) {
			continue
		}
		return nil, err
	}
	if !created {
		return nil, domain.ErrOrderNumberExhausted
	}

	if s.qrEncoder != nil {
		if qr, qrErr := s.qrEncoder.Generate(order.OrderNumber); qrErr == nil {
			if saveErr := s.orders.SaveQRCode(ctx, order.ID, qr); saveErr != nil {
				s.log.WithError(saveErr).Warn("failed to store pickup QR code")
			}
		}
	}

	s.publish(ctx, domain.OrderEvent{
		Type:        domain.EventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		ShopID:      order.ShopID,
		MerchantID:  order.MerchantID,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
		Total:       order.Total,
	})

	return order, nil
}

// Get returns a single order, scoped by role: customers see their own,
// merchants their shop's, admins everything.
func (s *OrderService) Get(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkOrderAccess(actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Order, domain.Page, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.Page{}, domain.ErrForbidden
	}
	page, limit = clampPage(page, limit, defaultPageLimit)
	orders, total, err := s.orders.ListCustomerOrders(ctx, actor.UserID, page, limit)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return orders, pageEcho(page, limit, total), nil
}

func (s *OrderService) ListForMerchant(ctx context.Context, actor domain.Actor, status string, page, limit int) ([]domain.Order, domain.Page, error) {
	if actor.Role != domain.RoleMerchant || !actor.Approved {
		return nil, domain.Page{}, domain.ErrForbidden
	}

	var filter domain.OrderStatus
	if status != "" && status != "all" {
		filter = domain.OrderStatus(status)
		if !filter.Valid() {
			return nil, domain.Page{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
		}
	}

	page, limit = clampPage(page, limit, merchantPageLimit)
	orders, total, err := s.orders.ListMerchantOrders(ctx, actor.UserID, filter, page, limit)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return orders, pageEcho(page, limit, total), nil
}

// PickupQRCode serves the stored QR image, regenerating it when absent.
func (s *OrderService) PickupQRCode(ctx context.Context, actor domain.Actor, orderID uuid.UUID) ([]byte, error) {
	order, err := s.Get(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	qr, err := s.orders.GetQRCode(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		regenerated, genErr := s.qrEncoder.Generate(order.OrderNumber)
		if genErr != nil {
			return nil, genErr
		}
		if saveErr := s.orders.SaveQRCode(ctx, orderID, regenerated); saveErr != nil {
			s.log.WithError(saveErr).Warn("failed to cache regenerated QR code")
		}
		return regenerated, nil
	}
	return qr, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = s.now()
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.WithError(err).WithField("type", event.Type).Warn("failed to publish order event")
	}
}

func checkOrderAccess(actor domain.Actor, order *domain.Order) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleCustomer:
		if order.CustomerID == actor.UserID {
			return nil
		}
	case domain.RoleMerchant:
		if order.MerchantID == actor.UserID {
			return nil
		}
	}
	// Non-owners cannot learn whether the order exists.
	return domain.ErrOrderNotFound
}

func clampPage(page, limit, fallback int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = fallback
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func pageEcho(page, limit, total int) domain.Page {
	pages := (total + limit - 1) / limit
	return domain.Page{Page: page, Limit: limit, Total: total, Pages: pages}
}
