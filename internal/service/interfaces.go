package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mealbox/internal/domain"
)

// TransitionOpts carries the optional fields a merchant may set alongside a
// status update.
type TransitionOpts struct {
	EstimatedPickupTime *time.Time
	CancellationReason  string
}

type ShopRepository interface {
	CreateShop(ctx context.Context, shop *domain.Shop) error
	GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
	GetShopByMerchant(ctx context.Context, merchantID uuid.UUID) (*domain.Shop, error)
	ListShops(ctx context.Context) ([]domain.Shop, error)
	UpdateSettings(ctx context.Context, shopID uuid.UUID, settings domain.ShopSettings) (*domain.Shop, error)
	ResetDailyCounters(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	// CreateOrder persists the order header and every nested item, curry and
	// customization, and reserves shop capacity, as one transaction. It
	// returns domain.ErrOrderLimitReached when the conditional capacity
	// increment matches no row, and domain.ErrOrderNumberTaken on an
	// order-number unique violation.
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID, page, limit int) ([]domain.Order, int, error)
	ListMerchantOrders(ctx context.Context, merchantID uuid.UUID, status domain.OrderStatus, page, limit int) ([]domain.Order, int, error)
	// TransitionOrder re-reads the order under a row lock, validates the
	// transition against domain.AllowedTransitions, writes the new status,
	// the first-entry timestamp and the opts, and accrues shop revenue when
	// the target is completed, all in one transaction.
	TransitionOrder(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus, opts TransitionOpts) (*domain.Order, error)
	// AttachReview sets the order rating/review and folds the rating into the
	// owning shop's running average in one transaction.
	AttachReview(ctx context.Context, orderID, customerID uuid.UUID, rating int, review string) (*domain.Order, error)
	SaveQRCode(ctx context.Context, orderID uuid.UUID, qr []byte) error
	GetQRCode(ctx context.Context, orderID uuid.UUID) ([]byte, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ApproveMerchant(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type ReviewCache interface {
	ReviewMarkerKey(orderID uuid.UUID) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderNumber string) ([]byte, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, actor domain.Actor, input CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (*domain.Order, error)
	ListMine(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Order, domain.Page, error)
	ListForMerchant(ctx context.Context, actor domain.Actor, status string, page, limit int) ([]domain.Order, domain.Page, error)
	PickupQRCode(ctx context.Context, actor domain.Actor, orderID uuid.UUID) ([]byte, error)
}

type StatusServiceInterface interface {
	Transition(ctx context.Context, actor domain.Actor, orderID uuid.UUID, target domain.OrderStatus, opts TransitionOpts) (*domain.Order, error)
}

type ReviewServiceInterface interface {
	Submit(ctx context.Context, actor domain.Actor, orderID uuid.UUID, rating int, review string) (*domain.Order, error)
}

type ShopServiceInterface interface {
	Get(ctx context.Context, shopID uuid.UUID) (*domain.Shop, error)
	List(ctx context.Context) ([]domain.Shop, error)
	GetForMerchant(ctx context.Context, actor domain.Actor) (*domain.Shop, error)
	UpdateSettings(ctx context.Context, actor domain.Actor, settings domain.ShopSettings) (*domain.Shop, error)
	ResetDailyCounters(ctx context.Context, actor domain.Actor) (int64, error)
	ProvisionForMerchant(ctx context.Context, actor domain.Actor, merchantID uuid.UUID) (*domain.Shop, error)
}

var (
	_ OrderServiceInterface  = (*OrderService)(nil)
	_ StatusServiceInterface = (*StatusService)(nil)
	_ ReviewServiceInterface = (*ReviewService)(nil)
	_ ShopServiceInterface   = (*ShopService)(nil)
)
