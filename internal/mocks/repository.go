package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mealbox/internal/domain"
	"mealbox/internal/service"
)

type constructorT interface {
	mock.TestingT
	Cleanup(func())
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t constructorT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderRepository) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, page, limit int) ([]domain.Order, int, error) {
	args := m.Called(ctx, customerID, page, limit)
	var orders []domain.Order
	if v := args.Get(0); v != nil {
		orders = v.([]domain.Order)
	}
	return orders, args.Int(1), args.Error(2)
}

func (m *OrderRepository) ListMerchantOrders(ctx context.Context, merchantID uuid.UUID, status domain.OrderStatus, page, limit int) ([]domain.Order, int, error) {
	args := m.Called(ctx, merchantID, status, page, limit)
	var orders []domain.Order
	if v := args.Get(0); v != nil {
		orders = v.([]domain.Order)
	}
	return orders, args.Int(1), args.Error(2)
}

func (m *OrderRepository) TransitionOrder(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus, opts service.TransitionOpts) (*domain.Order, error) {
	args := m.Called(ctx, orderID, target, opts)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderRepository) AttachReview(ctx context.Context, orderID, customerID uuid.UUID, rating int, review string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, customerID, rating, review)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderRepository) SaveQRCode(ctx context.Context, orderID uuid.UUID, qr []byte) error {
	return m.Called(ctx, orderID, qr).Error(0)
}

func (m *OrderRepository) GetQRCode(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, orderID)
	var qr []byte
	if v := args.Get(0); v != nil {
		qr = v.([]byte)
	}
	return qr, args.Error(1)
}

type ShopRepository struct {
	mock.Mock
}

func NewShopRepository(t constructorT) *ShopRepository {
	m := &ShopRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ShopRepository) CreateShop(ctx context.Context, shop *domain.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *ShopRepository) GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	var shop *domain.Shop
	if v := args.Get(0); v != nil {
		shop = v.(*domain.Shop)
	}
	return shop, args.Error(1)
}

func (m *ShopRepository) GetShopByMerchant(ctx context.Context, merchantID uuid.UUID) (*domain.Shop, error) {
	args := m.Called(ctx, merchantID)
	var shop *domain.Shop
	if v := args.Get(0); v != nil {
		shop = v.(*domain.Shop)
	}
	return shop, args.Error(1)
}

func (m *ShopRepository) ListShops(ctx context.Context) ([]domain.Shop, error) {
	args := m.Called(ctx)
	var shops []domain.Shop
	if v := args.Get(0); v != nil {
		shops = v.([]domain.Shop)
	}
	return shops, args.Error(1)
}

func (m *ShopRepository) UpdateSettings(ctx context.Context, shopID uuid.UUID, settings domain.ShopSettings) (*domain.Shop, error) {
	args := m.Called(ctx, shopID, settings)
	var shop *domain.Shop
	if v := args.Get(0); v != nil {
		shop = v.(*domain.Shop)
	}
	return shop, args.Error(1)
}

func (m *ShopRepository) ResetDailyCounters(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t constructorT) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if v := args.Get(0); v != nil {
		user = v.(*domain.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	var user *domain.User
	if v := args.Get(0); v != nil {
		user = v.(*domain.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) ApproveMerchant(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	var user *domain.User
	if v := args.Get(0); v != nil {
		user = v.(*domain.User)
	}
	return user, args.Error(1)
}
