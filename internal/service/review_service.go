package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mealbox/internal/domain"
)

// ReviewService folds a completed order's one-time rating into the owning
// shop's running average. The database is the source of truth; the Redis
// marker and Kafka event are best-effort side channels set after commit.
type ReviewService struct {
	orders    OrderRepository
	cache     ReviewCache
	publisher EventPublisher
	log       *logrus.Logger
}

func NewReviewService(orders OrderRepository, cache ReviewCache, publisher EventPublisher, log *logrus.Logger) *ReviewService {
	return &ReviewService{orders: orders, cache: cache, publisher: publisher, log: log}
}

func (s *ReviewService) Submit(ctx context.Context, actor domain.Actor, orderID uuid.UUID, rating int, review string) (*domain.Order, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.ErrForbidden
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}

	var markerKey string
	if s.cache != nil {
		markerKey = s.cache.ReviewMarkerKey(orderID)
		if exists, err := s.cache.Exists(ctx, markerKey); err == nil && exists {
			// The marker is keyed by order alone, so confirm the caller owns
			// the order before admitting that a review exists. Non-owners get
			// the same not-found answer as on any other order read.
			existing, err := s.orders.GetOrder(ctx, orderID)
			if err != nil {
				return nil, err
			}
			if existing.CustomerID != actor.UserID {
				return nil, domain.ErrOrderNotFound
			}
			return nil, domain.ErrAlreadyReviewed
		}
	}

	order, err := s.orders.AttachReview(ctx, orderID, actor.UserID, rating, review)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetMarker(ctx, markerKey); err != nil {
			s.log.WithError(err).Warn("failed to set review marker")
		}
	}

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:        domain.EventReviewSubmitted,
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			ShopID:      order.ShopID,
			MerchantID:  order.MerchantID,
			CustomerID:  order.CustomerID,
			Rating:      rating,
			Timestamp:   order.UpdatedAt,
		}
		if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
			s.log.WithError(err).Warn("failed to publish review event")
		}
	}

	return order, nil
}
