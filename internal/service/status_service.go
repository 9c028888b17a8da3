package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mealbox/internal/domain"
)

// StatusService gates order status changes: it owns the role and ownership
// checks, while the repository applies the transition atomically under a row
// lock (status write, first-entry timestamp, revenue accrual on completion).
type StatusService struct {
	orders    OrderRepository
	publisher EventPublisher
	log       *logrus.Logger
}

func NewStatusService(orders OrderRepository, publisher EventPublisher, log *logrus.Logger) *StatusService {
	return &StatusService{orders: orders, publisher: publisher, log: log}
}

func (s *StatusService) Transition(ctx context.Context, actor domain.Actor, orderID uuid.UUID, target domain.OrderStatus, opts TransitionOpts) (*domain.Order, error) {
	if !target.Valid() || target == domain.StatusPending {
		return nil, domain.ErrInvalidTransition
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleMerchant:
		if !actor.Approved {
			return nil, domain.ErrForbidden
		}
		order, err := s.orders.GetOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order.MerchantID != actor.UserID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	// The repository re-validates the transition under the row lock; the
	// read above is only an ownership check and may be stale by the time
	// the lock is taken.
	order, err := s.orders.TransitionOrder(ctx, orderID, target, opts)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:        domain.EventStatusChanged,
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			ShopID:      order.ShopID,
			MerchantID:  order.MerchantID,
			CustomerID:  order.CustomerID,
			Status:      order.Status,
			Total:       order.Total,
			Timestamp:   order.UpdatedAt,
		}
		if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
			s.log.WithError(err).Warn("failed to publish status event")
		}
	}

	return order, nil
}
