package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"mealbox/internal/domain"
	"mealbox/internal/service"
)

const pqUniqueViolation = "23505"

// PostgresRepository backs the shop, order and user repositories with a
// single *sql.DB. Multi-record writes run in transactions; capacity
// reservation and revenue accrual are single atomic statements.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var (
	_ service.ShopRepository  = (*PostgresRepository)(nil)
	_ service.OrderRepository = (*PostgresRepository)(nil)
	_ service.UserRepository  = (*PostgresRepository)(nil)
)

// --- users ---

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, phone, password, role, approved, shop_name, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, user.ID, user.Name, user.Email, user.Phone, user.Password, user.Role, user.Approved,
		user.ShopName, user.Location).Scan(&user.CreatedAt)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, `LOWER(email) = LOWER($1)`, email)
}

func (r *PostgresRepository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getUser(ctx, `id = $1`, id)
}

func (r *PostgresRepository) getUser(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), password, role, approved,
		       COALESCE(shop_name, ''), COALESCE(location, ''), created_at
		FROM users
		WHERE `+where+` AND archived_at IS NULL`, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Password, &user.Role,
			&user.Approved, &user.ShopName, &user.Location, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) ApproveMerchant(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRowContext(ctx, `
		UPDATE users SET approved = TRUE
		WHERE id = $1 AND role = 'merchant' AND archived_at IS NULL
		RETURNING id, name, email, COALESCE(phone, ''), role, approved,
		          COALESCE(shop_name, ''), COALESCE(location, ''), created_at
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role, &user.Approved,
		&user.ShopName, &user.Location, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// --- shops ---

func (r *PostgresRepository) CreateShop(ctx context.Context, shop *domain.Shop) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO shops (id, merchant_id, name, location, phone, is_open, accepting_orders,
		                   closing_time, order_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, shop.ID, shop.MerchantID, shop.Name, shop.Location, shop.Phone, shop.IsOpen,
		shop.AcceptingOrders, shop.ClosingTime, shop.OrderLimit).Scan(&shop.CreatedAt); err != nil {
		return err
	}

	for i, m := range shop.MealTypes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shop_meal_types (id, shop_id, name, price, available, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, m.ID, shop.ID, m.Name, m.Price, m.Available, i); err != nil {
			return err
		}
	}
	for i, c := range shop.Curries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shop_curries (id, shop_id, name, available, position)
			VALUES ($1, $2, $3, $4, $5)
		`, c.ID, shop.ID, c.Name, c.Available, i); err != nil {
			return err
		}
	}
	for i, c := range shop.Customizations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shop_customizations (id, shop_id, name, price, type, available, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, c.ID, shop.ID, c.Name, c.Price, c.Type, c.Available, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const shopColumns = `id, merchant_id, name, COALESCE(location, ''), COALESCE(phone, ''),
	is_open, accepting_orders, COALESCE(closing_time, ''), order_limit, orders_received,
	total_orders, total_revenue, rating, review_count, created_at`

func (r *PostgresRepository) GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	return r.getShop(ctx, `id = $1`, id)
}

func (r *PostgresRepository) GetShopByMerchant(ctx context.Context, merchantID uuid.UUID) (*domain.Shop, error) {
	return r.getShop(ctx, `merchant_id = $1`, merchantID)
}

func (r *PostgresRepository) getShop(ctx context.Context, where string, arg interface{}) (*domain.Shop, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+shopColumns+` FROM shops WHERE `+where, arg)
	shop, err := scanShop(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadCatalog(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (r *PostgresRepository) ListShops(ctx context.Context) ([]domain.Shop, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+shopColumns+` FROM shops ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []domain.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, *shop)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range shops {
		if err := r.loadCatalog(ctx, &shops[i]); err != nil {
			return nil, err
		}
	}
	return shops, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShop(row rowScanner) (*domain.Shop, error) {
	var shop domain.Shop
	err := row.Scan(&shop.ID, &shop.MerchantID, &shop.Name, &shop.Location, &shop.Phone,
		&shop.IsOpen, &shop.AcceptingOrders, &shop.ClosingTime, &shop.OrderLimit,
		&shop.OrdersReceived, &shop.TotalOrders, &shop.TotalRevenue, &shop.Rating,
		&shop.ReviewCount, &shop.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *PostgresRepository) loadCatalog(ctx context.Context, shop *domain.Shop) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, price, available FROM shop_meal_types
		WHERE shop_id = $1 ORDER BY position`, shop.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var m domain.MealType
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.Available); err != nil {
			return err
		}
		shop.MealTypes = append(shop.MealTypes, m)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	curryRows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, available FROM shop_curries
		WHERE shop_id = $1 ORDER BY position`, shop.ID)
	if err != nil {
		return err
	}
	defer curryRows.Close()
	for curryRows.Next() {
		var c domain.Curry
		if err := curryRows.Scan(&c.ID, &c.Name, &c.Available); err != nil {
			return err
		}
		shop.Curries = append(shop.Curries, c)
	}
	if err := curryRows.Err(); err != nil {
		return err
	}

	customRows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, price, type, available FROM shop_customizations
		WHERE shop_id = $1 ORDER BY position`, shop.ID)
	if err != nil {
		return err
	}
	defer customRows.Close()
	for customRows.Next() {
		var c domain.Customization
		if err := customRows.Scan(&c.ID, &c.Name, &c.Price, &c.Type, &c.Available); err != nil {
			return err
		}
		shop.Customizations = append(shop.Customizations, c)
	}
	return customRows.Err()
}

func (r *PostgresRepository) UpdateSettings(ctx context.Context, shopID uuid.UUID, settings domain.ShopSettings) (*domain.Shop, error) {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE shops SET
			is_open          = COALESCE($1, is_open),
			accepting_orders = COALESCE($2, accepting_orders),
			order_limit      = COALESCE($3, order_limit),
			closing_time     = COALESCE($4, closing_time)
		WHERE id = $5
	`, settings.IsOpen, settings.AcceptingOrders, settings.OrderLimit, settings.ClosingTime, shopID)
	if err != nil {
		return nil, err
	}
	return r.GetShop(ctx, shopID)
}

func (r *PostgresRepository) ResetDailyCounters(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `UPDATE shops SET orders_received = 0`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// --- orders ---

// CreateOrder reserves the shop's capacity slot and writes the whole order
// tree as one transaction. The conditional increment matches zero rows at
// the limit, so two orders racing for the last slot cannot both commit.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE shops
		SET orders_received = orders_received + 1, total_orders = total_orders + 1
		WHERE id = $1 AND (order_limit = 0 OR orders_received < order_limit)
	`, order.ShopID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOrderLimitReached
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, order_number, customer_id, customer_name, customer_phone,
		                    merchant_id, merchant_name, shop_id, total, status,
		                    payment_status, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`, order.ID, order.OrderNumber, order.CustomerID, order.CustomerName, order.CustomerPhone,
		order.MerchantID, order.MerchantName, order.ShopID, order.Total, order.Status,
		order.PaymentStatus, order.PaymentMethod, order.Notes).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.ErrOrderNumberTaken
		}
		return err
	}

	for i, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, meal_type_id, meal_type_name, meal_type_price,
			                         subtotal, special_instructions, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, item.ID, order.ID, item.MealTypeID, item.MealTypeName, item.MealTypePrice,
			item.Subtotal, item.SpecialInstructions, i); err != nil {
			return err
		}
		for j, curry := range item.Curries {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_item_curries (order_item_id, curry_id, curry_name, position)
				VALUES ($1, $2, $3, $4)
			`, item.ID, curry.CurryID, curry.Name, j); err != nil {
				return err
			}
		}
		for j, custom := range item.Customizations {
			quantity := custom.Quantity
			if quantity < 1 {
				quantity = 1
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_item_customizations
					(order_item_id, customization_id, name, price, type, quantity, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, item.ID, custom.CustomizationID, custom.Name, custom.Price, custom.Type, quantity, j); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

const orderColumns = `id, order_number, customer_id, customer_name, COALESCE(customer_phone, ''),
	merchant_id, merchant_name, shop_id, total, status, payment_status, payment_method,
	confirmed_at, preparing_at, ready_at, completed_at, cancelled_at,
	estimated_pickup_time, COALESCE(notes, ''), rating, COALESCE(review, ''),
	COALESCE(cancellation_reason, ''), created_at, updated_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order                                                     domain.Order
		confirmed, preparing, ready, completed, cancelled, pickup sql.NullTime
		rating                                                    sql.NullInt64
	)
	err := row.Scan(&order.ID, &order.OrderNumber, &order.CustomerID, &order.CustomerName,
		&order.CustomerPhone, &order.MerchantID, &order.MerchantName, &order.ShopID,
		&order.Total, &order.Status, &order.PaymentStatus, &order.PaymentMethod,
		&confirmed, &preparing, &ready, &completed, &cancelled, &pickup,
		&order.Notes, &rating, &order.Review, &order.CancellationReason,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if confirmed.Valid {
		order.ConfirmedAt = &confirmed.Time
	}
	if preparing.Valid {
		order.PreparingAt = &preparing.Time
	}
	if ready.Valid {
		order.ReadyAt = &ready.Time
	}
	if completed.Valid {
		order.CompletedAt = &completed.Time
	}
	if cancelled.Valid {
		order.CancelledAt = &cancelled.Time
	}
	if pickup.Valid {
		order.EstimatedPickupTime = &pickup.Time
	}
	if rating.Valid {
		value := int(rating.Int64)
		order.Rating = &value
	}
	return &order, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, order *domain.Order) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, meal_type_id, meal_type_name, meal_type_price, subtotal,
		       COALESCE(special_instructions, '')
		FROM order_items
		WHERE order_id = $1
		ORDER BY position`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	itemIndex := make(map[uuid.UUID]int)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.MealTypeID, &item.MealTypeName,
			&item.MealTypePrice, &item.Subtotal, &item.SpecialInstructions); err != nil {
			return err
		}
		itemIndex[item.ID] = len(order.Items)
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(order.Items) == 0 {
		return nil
	}

	curryRows, err := r.DB.QueryContext(ctx, `
		SELECT oic.order_item_id, oic.curry_id, oic.curry_name
		FROM order_item_curries oic
		JOIN order_items oi ON oi.id = oic.order_item_id
		WHERE oi.order_id = $1
		ORDER BY oic.position`, order.ID)
	if err != nil {
		return err
	}
	defer curryRows.Close()
	for curryRows.Next() {
		var itemID uuid.UUID
		var curry domain.OrderCurry
		if err := curryRows.Scan(&itemID, &curry.CurryID, &curry.Name); err != nil {
			return err
		}
		if idx, ok := itemIndex[itemID]; ok {
			order.Items[idx].Curries = append(order.Items[idx].Curries, curry)
		}
	}
	if err := curryRows.Err(); err != nil {
		return err
	}

	customRows, err := r.DB.QueryContext(ctx, `
		SELECT oicu.order_item_id, oicu.customization_id, oicu.name, oicu.price, oicu.type, oicu.quantity
		FROM order_item_customizations oicu
		JOIN order_items oi ON oi.id = oicu.order_item_id
		WHERE oi.order_id = $1
		ORDER BY oicu.position`, order.ID)
	if err != nil {
		return err
	}
	defer customRows.Close()
	for customRows.Next() {
		var itemID uuid.UUID
		var custom domain.OrderCustomization
		if err := customRows.Scan(&itemID, &custom.CustomizationID, &custom.Name,
			&custom.Price, &custom.Type, &custom.Quantity); err != nil {
			return err
		}
		if idx, ok := itemIndex[itemID]; ok {
			order.Items[idx].Customizations = append(order.Items[idx].Customizations, custom)
		}
	}
	return customRows.Err()
}

func (r *PostgresRepository) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, page, limit int) ([]domain.Order, int, error) {
	return r.listOrders(ctx, `customer_id = $1`, []interface{}{customerID}, page, limit)
}

func (r *PostgresRepository) ListMerchantOrders(ctx context.Context, merchantID uuid.UUID, status domain.OrderStatus, page, limit int) ([]domain.Order, int, error) {
	if status == "" {
		return r.listOrders(ctx, `merchant_id = $1`, []interface{}{merchantID}, page, limit)
	}
	return r.listOrders(ctx, `merchant_id = $1 AND status = $2`, []interface{}{merchantID, status}, page, limit)
}

func (r *PostgresRepository) listOrders(ctx context.Context, where string, args []interface{}, page, limit int) ([]domain.Order, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)
	rows, err := r.DB.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

// timestampColumn maps a status to the column recording its first entry.
var timestampColumn = map[domain.OrderStatus]string{
	domain.StatusConfirmed: "confirmed_at",
	domain.StatusPreparing: "preparing_at",
	domain.StatusReady:     "ready_at",
	domain.StatusCompleted: "completed_at",
	domain.StatusCancelled: "cancelled_at",
}

// TransitionOrder serializes transitions per order with a row lock and keeps
// the status write, the first-entry timestamp and the revenue accrual in one
// transaction, so a completed order can never accrue twice or not at all.
func (r *PostgresRepository) TransitionOrder(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus, opts service.TransitionOpts) (*domain.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var (
		current domain.OrderStatus
		shopID  uuid.UUID
		total   float64
	)
	err = tx.QueryRowContext(ctx, `
		SELECT status, shop_id, total FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&current, &shopID, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(current, target) {
		return nil, fmt.Errorf("%w: cannot change status from %s to %s",
			domain.ErrInvalidTransition, current, target)
	}

	column := timestampColumn[target]
	query := fmt.Sprintf(`
		UPDATE orders
		SET status = $1,
		    %s = COALESCE(%s, NOW()),
		    estimated_pickup_time = COALESCE($2, estimated_pickup_time),
		    updated_at = NOW()
		WHERE id = $3`, column, column)
	if _, err := tx.ExecContext(ctx, query, target, opts.EstimatedPickupTime, orderID); err != nil {
		return nil, err
	}

	if target == domain.StatusCancelled && opts.CancellationReason != "" {
		if _, err := tx.ExecContext(ctx, `
			UPDATE orders SET cancellation_reason = $1 WHERE id = $2
		`, opts.CancellationReason, orderID); err != nil {
			return nil, err
		}
	}

	if target == domain.StatusCompleted {
		if _, err := tx.ExecContext(ctx, `
			UPDATE shops SET total_revenue = total_revenue + $1 WHERE id = $2
		`, total, shopID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, orderID)
}

// AttachReview sets the one-time rating on the order and folds it into the
// shop's running average in the same transaction.
func (r *PostgresRepository) AttachReview(ctx context.Context, orderID, customerID uuid.UUID, rating int, review string) (*domain.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var (
		status   domain.OrderStatus
		shopID   uuid.UUID
		existing sql.NullInt64
	)
	err = tx.QueryRowContext(ctx, `
		SELECT status, shop_id, rating FROM orders
		WHERE id = $1 AND customer_id = $2
		FOR UPDATE
	`, orderID, customerID).Scan(&status, &shopID, &existing)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if status != domain.StatusCompleted {
		return nil, domain.ErrOrderNotCompleted
	}
	if existing.Valid {
		return nil, domain.ErrAlreadyReviewed
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET rating = $1, review = $2, updated_at = NOW() WHERE id = $3
	`, rating, review, orderID); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE shops
		SET rating = (rating * review_count + $1) / (review_count + 1),
		    review_count = review_count + 1
		WHERE id = $2
	`, rating, shopID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, orderID)
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID uuid.UUID, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRowContext(ctx, `SELECT qr_code FROM orders WHERE id = $1`, orderID).Scan(&qr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return qr, nil
}
