package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mealbox/internal/domain"
	"mealbox/internal/mocks"
	"mealbox/internal/service"
)

func customerActor() domain.Actor {
	return domain.Actor{
		UserID: uuid.New(),
		Name:   "Nimal Perera",
		Phone:  "0771234567",
		Role:   domain.RoleCustomer,
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&nullWriter{})
	return log
}

type nullWriter struct{}

func (*nullWriter) Write(p []byte) (int, error) { return len(p), nil }

func orderInput(shopID uuid.UUID) service.CreateOrderInput {
	return service.CreateOrderInput{
		ShopID: shopID,
		Items: []domain.OrderItem{
			{
				MealTypeID:   uuid.New(),
				MealTypeName: "Chicken Rice",
				Curries:      []domain.OrderCurry{{CurryID: uuid.New(), Name: "Dhal Curry"}},
				Subtotal:     350,
			},
		},
		Total: 350,
	}
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()
	actor := customerActor()

	t.Run("success", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		shops := mocks.NewShopRepository(t)
		publisher := mocks.NewEventPublisher(t)
		qr := mocks.NewQRGenerator(t)
		svc := service.NewOrderService(orders, shops, publisher, qr, testLogger())

		shop := openShop()
		shops.On("GetShop", ctx, shop.ID).Return(shop, nil).Once()
		orders.On("CreateOrder", ctx, mock.Anything).Return(nil).Once()
		qr.On("Generate", mock.Anything).Return([]byte("png"), nil).Once()
		orders.On("SaveQRCode", ctx, mock.Anything, []byte("png")).Return(nil).Once()
		publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(e domain.OrderEvent) bool {
			return e.Type == domain.EventOrderCreated
		})).Return(nil).Once()

		order, err := svc.Create(ctx, actor, orderInput(shop.ID))

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
		assert.Equal(t, domain.PaymentCash, order.PaymentMethod)
		assert.Equal(t, actor.UserID, order.CustomerID)
		assert.Equal(t, actor.Name, order.CustomerName)
		assert.Equal(t, shop.MerchantID, order.MerchantID)
		assert.Equal(t, shop.Name, order.MerchantName)
		assert.Regexp(t, `^ORD\d{9}$`, order.OrderNumber)
		assert.NotEqual(t, uuid.Nil, order.Items[0].ID)
	})

	t.Run("merchant_cannot_order", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		shops := mocks.NewShopRepository(t)
		svc := service.NewOrderService(orders, shops, nil, nil, testLogger())

		_, err := svc.Create(ctx, domain.Actor{Role: domain.RoleMerchant}, orderInput(uuid.New()))

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("shop_closed", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		shops := mocks.NewShopRepository(t)
		svc := service.NewOrderService(orders, shops, nil, nil, testLogger())

		shop := openShop()
		shop.IsOpen = false
		shops.On("GetShop", ctx, shop.ID).Return(shop, nil).Once()

		_, err := svc.Create(ctx, actor, orderInput(shop.ID))

		assert.ErrorIs(t, err, domain.ErrShopClosed)
		orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("unknown_payment_method", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		shops := mocks.NewShopRepository(t)
		svc := service.NewOrderService(orders, shops, nil, nil, testLogger())

		shop := openShop()
		shops.On("GetShop", ctx, shop.ID).Return(shop, nil).Once()

		input := orderInput(shop.ID)
		input.PaymentMethod = "cheque"
		_, err := svc.Create(ctx, actor, input)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("order_number_collisions_are_retried", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		shops := mocks.NewShopRepository(t)
		svc := service.NewOrderService(orders, shops, nil, nil, testLogger())

		shop := openShop()
		shops.On("GetShop", ctx, shop.ID).Return(shop, nil).Once()
		orders.On("CreateOrder", ctx, mock.Anything).Return(domain.ErrOrderNumberTaken).Twice()
		orders.On("CreateOrder", ctx, mock.Anything).Return(nil).Once()

		order, err := svc.Create(ctx, actor, orderInput(shop.ID))

		assert.NoError(t, err)
		assert.NotEmpty(t, order.OrderNumber)
	})

	t.Run("order_number_exhausted", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		shops := mocks.NewShopRepository(t)
		svc := service.NewOrderService(orders, shops, nil, nil, testLogger())

		shop := openShop()
		shops.On("GetShop", ctx, shop.ID).Return(shop, nil).Once()
		orders.On("CreateOrder", ctx, mock.Anything).Return(domain.ErrOrderNumberTaken).Times(5)

		_, err := svc.Create(ctx, actor, orderInput(shop.ID))

		assert.ErrorIs(t, err, domain.ErrOrderNumberExhausted)
	})

	t.Run("storage_error_is_not_retried", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		shops := mocks.NewShopRepository(t)
		svc := service.NewOrderService(orders, shops, nil, nil, testLogger())

		boom := errors.New("connection reset")
		shop := openShop()
		shops.On("GetShop", ctx, shop.ID).Return(shop, nil).Once()
		orders.On("CreateOrder", ctx, mock.Anything).Return(boom).Once()

		_, err := svc.Create(ctx, actor, orderInput(shop.ID))

		assert.ErrorIs(t, err, boom)
	})
}

func TestOrderService_Get_AccessScoping(t *testing.T) {
	ctx := context.Background()

	customerID := uuid.New()
	merchantID := uuid.New()
	order := &domain.Order{ID: uuid.New(), CustomerID: customerID, MerchantID: merchantID}

	tests := []struct {
		name          string
		actor         domain.Actor
		expectedError error
	}{
		{"owner_customer", domain.Actor{UserID: customerID, Role: domain.RoleCustomer}, nil},
		{"owner_merchant", domain.Actor{UserID: merchantID, Role: domain.RoleMerchant}, nil},
		{"admin", domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}, nil},
		{"other_customer", domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}, domain.ErrOrderNotFound},
		{"other_merchant", domain.Actor{UserID: uuid.New(), Role: domain.RoleMerchant}, domain.ErrOrderNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := mocks.NewOrderRepository(t)
			svc := service.NewOrderService(orders, mocks.NewShopRepository(t), nil, nil, testLogger())

			orders.On("GetOrder", ctx, order.ID).Return(order, nil).Once()

			got, err := svc.Get(ctx, testCase.actor, order.ID)
			if testCase.expectedError == nil {
				assert.NoError(t, err)
				assert.Equal(t, order, got)
			} else {
				assert.ErrorIs(t, err, testCase.expectedError)
				assert.Nil(t, got)
			}
		})
	}
}

func TestOrderService_ListMine(t *testing.T) {
	ctx := context.Background()
	actor := customerActor()

	t.Run("pagination_echo", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewShopRepository(t), nil, nil, testLogger())

		orders.On("ListCustomerOrders", ctx, actor.UserID, 1, 10).
			Return([]domain.Order{{ID: uuid.New()}}, 25, nil).Once()

		_, page, err := svc.ListMine(ctx, actor, 0, 0)

		assert.NoError(t, err)
		assert.Equal(t, domain.Page{Page: 1, Limit: 10, Total: 25, Pages: 3}, page)
	})

	t.Run("limit_is_capped", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewShopRepository(t), nil, nil, testLogger())

		orders.On("ListCustomerOrders", ctx, actor.UserID, 2, 100).
			Return([]domain.Order{}, 0, nil).Once()

		_, _, err := svc.ListMine(ctx, actor, 2, 5000)

		assert.NoError(t, err)
	})

	t.Run("merchant_forbidden", func(t *testing.T) {
		svc := service.NewOrderService(mocks.NewOrderRepository(t), mocks.NewShopRepository(t), nil, nil, testLogger())

		_, _, err := svc.ListMine(ctx, domain.Actor{Role: domain.RoleMerchant, Approved: true}, 1, 10)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestOrderService_ListForMerchant(t *testing.T) {
	ctx := context.Background()
	merchant := domain.Actor{UserID: uuid.New(), Role: domain.RoleMerchant, Approved: true}

	t.Run("status_filter", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewShopRepository(t), nil, nil, testLogger())

		orders.On("ListMerchantOrders", ctx, merchant.UserID, domain.StatusPending, 1, 20).
			Return([]domain.Order{}, 0, nil).Once()

		_, _, err := svc.ListForMerchant(ctx, merchant, "pending", 1, 20)

		assert.NoError(t, err)
	})

	t.Run("all_means_no_filter", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewShopRepository(t), nil, nil, testLogger())

		orders.On("ListMerchantOrders", ctx, merchant.UserID, domain.OrderStatus(""), 1, 20).
			Return([]domain.Order{}, 0, nil).Once()

		_, _, err := svc.ListForMerchant(ctx, merchant, "all", 1, 20)

		assert.NoError(t, err)
	})

	t.Run("unknown_status", func(t *testing.T) {
		svc := service.NewOrderService(mocks.NewOrderRepository(t), mocks.NewShopRepository(t), nil, nil, testLogger())

		_, _, err := svc.ListForMerchant(ctx, merchant, "shipped", 1, 20)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unapproved_merchant", func(t *testing.T) {
		svc := service.NewOrderService(mocks.NewOrderRepository(t), mocks.NewShopRepository(t), nil, nil, testLogger())

		_, _, err := svc.ListForMerchant(ctx, domain.Actor{Role: domain.RoleMerchant}, "", 1, 20)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestOrderService_PickupQRCode(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	actor := domain.Actor{UserID: customerID, Role: domain.RoleCustomer}
	order := &domain.Order{ID: uuid.New(), OrderNumber: "ORD123456001", CustomerID: customerID}

	t.Run("stored_code_is_served", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, mocks.NewShopRepository(t), nil, mocks.NewQRGenerator(t), testLogger())

		orders.On("GetOrder", ctx, order.ID).Return(order, nil).Once()
		orders.On("GetQRCode", ctx, order.ID).Return([]byte("stored"), nil).Once()

		qr, err := svc.PickupQRCode(ctx, actor, order.ID)

		assert.NoError(t, err)
		assert.Equal(t, []byte("stored"), qr)
	})

	t.Run("missing_code_is_regenerated", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		qr := mocks.NewQRGenerator(t)
		svc := service.NewOrderService(orders, mocks.NewShopRepository(t), nil, qr, testLogger())

		orders.On("GetOrder", ctx, order.ID).Return(order, nil).Once()
		orders.On("GetQRCode", ctx, order.ID).Return(nil, nil).Once()
		qr.On("Generate", order.OrderNumber).Return([]byte("fresh"), nil).Once()
		orders.On("SaveQRCode", ctx, order.ID, []byte("fresh")).Return(nil).Once()

		got, err := svc.PickupQRCode(ctx, actor, order.ID)

		assert.NoError(t, err)
		assert.Equal(t, []byte("fresh"), got)
	})
}
