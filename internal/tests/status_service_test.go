package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mealbox/internal/domain"
	"mealbox/internal/mocks"
	"mealbox/internal/service"
)

func TestStatusService_Transition(t *testing.T) {
	ctx := context.Background()
	merchant := approvedMerchant()
	orderID := uuid.New()

	pendingOrder := &domain.Order{
		ID:          orderID,
		OrderNumber: "ORD123456001",
		MerchantID:  merchant.UserID,
		Status:      domain.StatusPending,
	}

	t.Run("merchant_confirms_own_order", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewStatusService(orders, publisher, testLogger())

		confirmed := *pendingOrder
		confirmed.Status = domain.StatusConfirmed

		orders.On("GetOrder", ctx, orderID).Return(pendingOrder, nil).Once()
		orders.On("TransitionOrder", ctx, orderID, domain.StatusConfirmed, service.TransitionOpts{}).
			Return(&confirmed, nil).Once()
		publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(e domain.OrderEvent) bool {
			return e.Type == domain.EventStatusChanged && e.Status == domain.StatusConfirmed
		})).Return(nil).Once()

		order, err := svc.Transition(ctx, merchant, orderID, domain.StatusConfirmed, service.TransitionOpts{})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, order.Status)
	})

	t.Run("admin_skips_ownership_read", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewStatusService(orders, nil, testLogger())

		cancelled := *pendingOrder
		cancelled.Status = domain.StatusCancelled
		opts := service.TransitionOpts{CancellationReason: "merchant unreachable"}

		orders.On("TransitionOrder", ctx, orderID, domain.StatusCancelled, opts).
			Return(&cancelled, nil).Once()

		_, err := svc.Transition(ctx, adminActor(), orderID, domain.StatusCancelled, opts)

		assert.NoError(t, err)
		orders.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	})

	t.Run("estimated_pickup_time_is_forwarded", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewStatusService(orders, nil, testLogger())

		pickup := time.Now().Add(30 * time.Minute)
		opts := service.TransitionOpts{EstimatedPickupTime: &pickup}
		confirmed := *pendingOrder
		confirmed.Status = domain.StatusConfirmed

		orders.On("GetOrder", ctx, orderID).Return(pendingOrder, nil).Once()
		orders.On("TransitionOrder", ctx, orderID, domain.StatusConfirmed, opts).
			Return(&confirmed, nil).Once()

		_, err := svc.Transition(ctx, merchant, orderID, domain.StatusConfirmed, opts)

		assert.NoError(t, err)
	})

	t.Run("foreign_order_forbidden", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewStatusService(orders, nil, testLogger())

		orders.On("GetOrder", ctx, orderID).Return(pendingOrder, nil).Once()

		other := approvedMerchant()
		_, err := svc.Transition(ctx, other, orderID, domain.StatusConfirmed, service.TransitionOpts{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("customer_forbidden", func(t *testing.T) {
		svc := service.NewStatusService(mocks.NewOrderRepository(t), nil, testLogger())

		_, err := svc.Transition(ctx, customerActor(), orderID, domain.StatusCancelled, service.TransitionOpts{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unapproved_merchant_forbidden", func(t *testing.T) {
		svc := service.NewStatusService(mocks.NewOrderRepository(t), nil, testLogger())

		_, err := svc.Transition(ctx, domain.Actor{Role: domain.RoleMerchant}, orderID, domain.StatusConfirmed, service.TransitionOpts{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("pending_is_never_a_target", func(t *testing.T) {
		svc := service.NewStatusService(mocks.NewOrderRepository(t), nil, testLogger())

		_, err := svc.Transition(ctx, adminActor(), orderID, domain.StatusPending, service.TransitionOpts{})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("unknown_target_status", func(t *testing.T) {
		svc := service.NewStatusService(mocks.NewOrderRepository(t), nil, testLogger())

		_, err := svc.Transition(ctx, adminActor(), orderID, "shipped", service.TransitionOpts{})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("repository_rejects_invalid_transition", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewStatusService(orders, nil, testLogger())

		orders.On("TransitionOrder", ctx, orderID, domain.StatusCompleted, service.TransitionOpts{}).
			Return(nil, domain.ErrInvalidTransition).Once()

		_, err := svc.Transition(ctx, adminActor(), orderID, domain.StatusCompleted, service.TransitionOpts{})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}
