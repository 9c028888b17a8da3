package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mealbox/internal/domain"
	"mealbox/internal/service"
)

type OrderService struct {
	mock.Mock
}

func NewOrderService(t constructorT) *OrderService {
	m := &OrderService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderService) Create(ctx context.Context, actor domain.Actor, input service.CreateOrderInput) (*domain.Order, error) {
	args := m.Called(ctx, actor, input)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderService) Get(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderService) ListMine(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Order, domain.Page, error) {
	args := m.Called(ctx, actor, page, limit)
	var orders []domain.Order
	if v := args.Get(0); v != nil {
		orders = v.([]domain.Order)
	}
	return orders, args.Get(1).(domain.Page), args.Error(2)
}

func (m *OrderService) ListForMerchant(ctx context.Context, actor domain.Actor, status string, page, limit int) ([]domain.Order, domain.Page, error) {
	args := m.Called(ctx, actor, status, page, limit)
	var orders []domain.Order
	if v := args.Get(0); v != nil {
		orders = v.([]domain.Order)
	}
	return orders, args.Get(1).(domain.Page), args.Error(2)
}

func (m *OrderService) PickupQRCode(ctx context.Context, actor domain.Actor, orderID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, actor, orderID)
	var png []byte
	if v := args.Get(0); v != nil {
		png = v.([]byte)
	}
	return png, args.Error(1)
}

type StatusService struct {
	mock.Mock
}

func NewStatusService(t constructorT) *StatusService {
	m := &StatusService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StatusService) Transition(ctx context.Context, actor domain.Actor, orderID uuid.UUID, target domain.OrderStatus, opts service.TransitionOpts) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID, target, opts)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

type ReviewService struct {
	mock.Mock
}

func NewReviewService(t constructorT) *ReviewService {
	m := &ReviewService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReviewService) Submit(ctx context.Context, actor domain.Actor, orderID uuid.UUID, rating int, review string) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID, rating, review)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

type ShopService struct {
	mock.Mock
}

func NewShopService(t constructorT) *ShopService {
	m := &ShopService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ShopService) Get(ctx context.Context, shopID uuid.UUID) (*domain.Shop, error) {
	args := m.Called(ctx, shopID)
	var shop *domain.Shop
	if v := args.Get(0); v != nil {
		shop = v.(*domain.Shop)
	}
	return shop, args.Error(1)
}

func (m *ShopService) List(ctx context.Context) ([]domain.Shop, error) {
	args := m.Called(ctx)
	var shops []domain.Shop
	if v := args.Get(0); v != nil {
		shops = v.([]domain.Shop)
	}
	return shops, args.Error(1)
}

func (m *ShopService) GetForMerchant(ctx context.Context, actor domain.Actor) (*domain.Shop, error) {
	args := m.Called(ctx, actor)
	var shop *domain.Shop
	if v := args.Get(0); v != nil {
		shop = v.(*domain.Shop)
	}
	return shop, args.Error(1)
}

func (m *ShopService) UpdateSettings(ctx context.Context, actor domain.Actor, settings domain.ShopSettings) (*domain.Shop, error) {
	args := m.Called(ctx, actor, settings)
	var shop *domain.Shop
	if v := args.Get(0); v != nil {
		shop = v.(*domain.Shop)
	}
	return shop, args.Error(1)
}

func (m *ShopService) ResetDailyCounters(ctx context.Context, actor domain.Actor) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ShopService) ProvisionForMerchant(ctx context.Context, actor domain.Actor, merchantID uuid.UUID) (*domain.Shop, error) {
	args := m.Called(ctx, actor, merchantID)
	var shop *domain.Shop
	if v := args.Get(0); v != nil {
		shop = v.(*domain.Shop)
	}
	return shop, args.Error(1)
}
