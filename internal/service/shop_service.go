package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mealbox/internal/domain"
)

type ShopService struct {
	shops ShopRepository
	users UserRepository
	log   *logrus.Logger
}

func NewShopService(shops ShopRepository, users UserRepository, log *logrus.Logger) *ShopService {
	return &ShopService{shops: shops, users: users, log: log}
}

func (s *ShopService) Get(ctx context.Context, shopID uuid.UUID) (*domain.Shop, error) {
	return s.shops.GetShop(ctx, shopID)
}

func (s *ShopService) List(ctx context.Context) ([]domain.Shop, error) {
	return s.shops.ListShops(ctx)
}

func (s *ShopService) GetForMerchant(ctx context.Context, actor domain.Actor) (*domain.Shop, error) {
	if actor.Role != domain.RoleMerchant || !actor.Approved {
		return nil, domain.ErrForbidden
	}
	return s.shops.GetShopByMerchant(ctx, actor.UserID)
}

func (s *ShopService) UpdateSettings(ctx context.Context, actor domain.Actor, settings domain.ShopSettings) (*domain.Shop, error) {
	if actor.Role != domain.RoleMerchant || !actor.Approved {
		return nil, domain.ErrForbidden
	}
	if settings.OrderLimit != nil && *settings.OrderLimit < 0 {
		return nil, fmt.Errorf("%w: order limit must not be negative", domain.ErrInvalidInput)
	}

	shop, err := s.shops.GetShopByMerchant(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.shops.UpdateSettings(ctx, shop.ID, settings)
}

// ResetDailyCounters zeroes ordersReceived on every shop. Invoked by an
// admin or an external scheduler, never by the request flow.
func (s *ShopService) ResetDailyCounters(ctx context.Context, actor domain.Actor) (int64, error) {
	if actor.Role != domain.RoleAdmin {
		return 0, domain.ErrForbidden
	}
	count, err := s.shops.ResetDailyCounters(ctx)
	if err != nil {
		return 0, err
	}
	s.log.WithField("shops", count).Info("daily order counters reset")
	return count, nil
}

// ProvisionForMerchant approves the merchant and creates their shop seeded
// with the default catalog. A merchant owns exactly one shop.
func (s *ShopService) ProvisionForMerchant(ctx context.Context, actor domain.Actor, merchantID uuid.UUID) (*domain.Shop, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	merchant, err := s.users.ApproveMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	shop := &domain.Shop{
		ID:              uuid.New(),
		MerchantID:      merchant.ID,
		Name:            merchant.ShopName,
		Location:        merchant.Location,
		Phone:           merchant.Phone,
		IsOpen:          true,
		AcceptingOrders: true,
		OrderLimit:      50,
		MealTypes:       defaultMealTypes(),
		Curries:         defaultCurries(),
		Customizations:  defaultCustomizations(),
	}
	if shop.Name == "" {
		shop.Name = merchant.Name
	}

	if err := s.shops.CreateShop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func defaultMealTypes() []domain.MealType {
	return []domain.MealType{
		{ID: uuid.New(), Name: "Vegetarian Rice", Price: 250, Available: true},
		{ID: uuid.New(), Name: "Chicken Rice", Price: 350, Available: true},
		{ID: uuid.New(), Name: "Fish Rice", Price: 400, Available: true},
		{ID: uuid.New(), Name: "Egg Rice", Price: 300, Available: true},
	}
}

func defaultCurries() []domain.Curry {
	return []domain.Curry{
		{ID: uuid.New(), Name: "Dhal Curry", Available: true},
		{ID: uuid.New(), Name: "Vegetable Curry", Available: true},
		{ID: uuid.New(), Name: "Potato Curry", Available: true},
		{ID: uuid.New(), Name: "Chicken Curry", Available: true},
		{ID: uuid.New(), Name: "Fish Curry", Available: true},
	}
}

func defaultCustomizations() []domain.Customization {
	return []domain.Customization{
		{ID: uuid.New(), Name: "Extra Chicken Piece", Price: 100, Type: domain.CustomizationProtein, Available: true},
		{ID: uuid.New(), Name: "Extra Fish Piece", Price: 150, Type: domain.CustomizationProtein, Available: true},
		{ID: uuid.New(), Name: "Extra Curry", Price: 50, Type: domain.CustomizationCurry, Available: true},
		{ID: uuid.New(), Name: "Extra Rice", Price: 30, Type: domain.CustomizationExtra, Available: true},
	}
}
