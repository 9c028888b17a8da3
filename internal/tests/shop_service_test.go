package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mealbox/internal/domain"
	"mealbox/internal/mocks"
	"mealbox/internal/service"
)

func approvedMerchant() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Name: "Kamala Silva", Role: domain.RoleMerchant, Approved: true}
}

func adminActor() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
}

func TestShopService_UpdateSettings(t *testing.T) {
	ctx := context.Background()
	merchant := approvedMerchant()

	t.Run("success", func(t *testing.T) {
		shops := mocks.NewShopRepository(t)
		svc := service.NewShopService(shops, mocks.NewUserRepository(t), testLogger())

		shop := openShop()
		shop.MerchantID = merchant.UserID
		limit := 30
		settings := domain.ShopSettings{OrderLimit: &limit}

		shops.On("GetShopByMerchant", ctx, merchant.UserID).Return(shop, nil).Once()
		shops.On("UpdateSettings", ctx, shop.ID, settings).Return(shop, nil).Once()

		_, err := svc.UpdateSettings(ctx, merchant, settings)

		assert.NoError(t, err)
	})

	t.Run("negative_limit", func(t *testing.T) {
		svc := service.NewShopService(mocks.NewShopRepository(t), mocks.NewUserRepository(t), testLogger())

		limit := -1
		_, err := svc.UpdateSettings(ctx, merchant, domain.ShopSettings{OrderLimit: &limit})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unapproved_merchant", func(t *testing.T) {
		svc := service.NewShopService(mocks.NewShopRepository(t), mocks.NewUserRepository(t), testLogger())

		_, err := svc.UpdateSettings(ctx, domain.Actor{Role: domain.RoleMerchant}, domain.ShopSettings{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("customer_forbidden", func(t *testing.T) {
		svc := service.NewShopService(mocks.NewShopRepository(t), mocks.NewUserRepository(t), testLogger())

		_, err := svc.UpdateSettings(ctx, customerActor(), domain.ShopSettings{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestShopService_ResetDailyCounters(t *testing.T) {
	ctx := context.Background()

	t.Run("admin_only", func(t *testing.T) {
		svc := service.NewShopService(mocks.NewShopRepository(t), mocks.NewUserRepository(t), testLogger())

		_, err := svc.ResetDailyCounters(ctx, approvedMerchant())

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("reports_affected_shops", func(t *testing.T) {
		shops := mocks.NewShopRepository(t)
		svc := service.NewShopService(shops, mocks.NewUserRepository(t), testLogger())

		shops.On("ResetDailyCounters", ctx).Return(int64(7), nil).Once()

		count, err := svc.ResetDailyCounters(ctx, adminActor())

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})
}

func TestShopService_ProvisionForMerchant(t *testing.T) {
	ctx := context.Background()
	merchantID := uuid.New()

	t.Run("seeds_default_catalog", func(t *testing.T) {
		shops := mocks.NewShopRepository(t)
		users := mocks.NewUserRepository(t)
		svc := service.NewShopService(shops, users, testLogger())

		users.On("ApproveMerchant", ctx, merchantID).Return(&domain.User{
			ID:       merchantID,
			Name:     "Kamala Silva",
			Role:     domain.RoleMerchant,
			Approved: true,
			ShopName: "Kamala's Kitchen",
			Location: "Faculty of Science",
		}, nil).Once()

		var created *domain.Shop
		shops.On("CreateShop", ctx, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Shop)
		}).Return(nil).Once()

		shop, err := svc.ProvisionForMerchant(ctx, adminActor(), merchantID)

		assert.NoError(t, err)
		assert.Equal(t, created, shop)
		assert.Equal(t, "Kamala's Kitchen", shop.Name)
		assert.Equal(t, merchantID, shop.MerchantID)
		assert.True(t, shop.IsOpen)
		assert.True(t, shop.AcceptingOrders)
		assert.Equal(t, 50, shop.OrderLimit)
		assert.Len(t, shop.MealTypes, 4)
		assert.Len(t, shop.Curries, 5)
		assert.Len(t, shop.Customizations, 4)
		assert.Equal(t, "Vegetarian Rice", shop.MealTypes[0].Name)
		assert.Equal(t, float64(250), shop.MealTypes[0].Price)
		assert.Equal(t, "Dhal Curry", shop.Curries[0].Name)
	})

	t.Run("falls_back_to_merchant_name", func(t *testing.T) {
		shops := mocks.NewShopRepository(t)
		users := mocks.NewUserRepository(t)
		svc := service.NewShopService(shops, users, testLogger())

		users.On("ApproveMerchant", ctx, merchantID).Return(&domain.User{
			ID:   merchantID,
			Name: "Kamala Silva",
		}, nil).Once()
		shops.On("CreateShop", ctx, mock.Anything).Return(nil).Once()

		shop, err := svc.ProvisionForMerchant(ctx, adminActor(), merchantID)

		assert.NoError(t, err)
		assert.Equal(t, "Kamala Silva", shop.Name)
	})

	t.Run("merchant_not_found", func(t *testing.T) {
		users := mocks.NewUserRepository(t)
		svc := service.NewShopService(mocks.NewShopRepository(t), users, testLogger())

		users.On("ApproveMerchant", ctx, merchantID).Return(nil, domain.ErrUserNotFound).Once()

		_, err := svc.ProvisionForMerchant(ctx, adminActor(), merchantID)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("non_admin_forbidden", func(t *testing.T) {
		svc := service.NewShopService(mocks.NewShopRepository(t), mocks.NewUserRepository(t), testLogger())

		_, err := svc.ProvisionForMerchant(ctx, approvedMerchant(), merchantID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
