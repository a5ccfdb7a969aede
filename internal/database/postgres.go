package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sreeaadya/drycleaners/internal/domain"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type OrderRepository struct {
	pool   *pgxpool.Pool
	prefix string
}

func NewOrderRepository(pool *pgxpool.Pool, prefix string) *OrderRepository {
	return &OrderRepository{pool: pool, prefix: prefix}
}

const orderColumns = `order_id, user_email, service, quantity, price, total_price, date, status, expected_delivery, pickup_person`

// formatOrderID renders the sequential order number as PREFIX-00001. Numbers
// past five digits widen the suffix instead of truncating it.
func formatOrderID(prefix string, n int64) string {
	return fmt.Sprintf("%s-%05d", prefix, n)
}

// Create reserves the next order number and inserts the order in a single
// transaction, so two concurrent creates can never observe the same number.
// The counter row is seeded on first use, which makes the first order
// PREFIX-00001.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var next int64
	err = tx.QueryRow(ctx, `
		INSERT INTO order_counter (id, value) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET value = order_counter.value + 1
		RETURNING value
	`).Scan(&next)
	if err != nil {
		return err
	}

	o.OrderID = formatOrderID(r.prefix, next)
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, o.OrderID, o.UserEmail, o.Service, o.Quantity, o.Price, o.TotalPrice,
		o.Date, o.Status, o.ExpectedDelivery, o.PickupPerson)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_id=$1
	`, orderID).Scan(&o.OrderID, &o.UserEmail, &o.Service, &o.Quantity, &o.Price,
		&o.TotalPrice, &o.Date, &o.Status, &o.ExpectedDelivery, &o.PickupPerson)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_email=$1
		ORDER BY date DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.OrderID, &o.UserEmail, &o.Service, &o.Quantity, &o.Price,
			&o.TotalPrice, &o.Date, &o.Status, &o.ExpectedDelivery, &o.PickupPerson); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Update overwrites only the fields present in upd and returns the updated
// row. Unset fields keep their stored values.
func (r *OrderRepository) Update(ctx context.Context, orderID string, upd domain.OrderUpdate) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `
		UPDATE orders SET
			status            = COALESCE($2, status),
			expected_delivery = COALESCE($3, expected_delivery),
			pickup_person     = COALESCE($4, pickup_person)
		WHERE order_id=$1
		RETURNING `+orderColumns+`
	`, orderID, upd.Status, upd.ExpectedDelivery, upd.PickupPerson).
		Scan(&o.OrderID, &o.UserEmail, &o.Service, &o.Quantity, &o.Price,
			&o.TotalPrice, &o.Date, &o.Status, &o.ExpectedDelivery, &o.PickupPerson)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE order_id=$1`, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `uid, name, email, password, google_id, phone, image, notifications_enabled, dark_mode, joined, address, city, pincode, landmark`

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Joined.IsZero() {
		u.Joined = time.Now()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`, u.UID, u.Name, u.Email, u.Password, u.GoogleID, u.Phone, u.Image,
		u.NotificationsEnabled, u.DarkMode, u.Joined, u.Address, u.City, u.Pincode, u.Landmark)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email=$1
	`, email).Scan(&u.UID, &u.Name, &u.Email, &u.Password, &u.GoogleID, &u.Phone, &u.Image,
		&u.NotificationsEnabled, &u.DarkMode, &u.Joined, &u.Address, &u.City, &u.Pincode, &u.Landmark)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// LinkGoogleID attaches a subject id to an account that has none yet. An
// already linked account is left untouched.
func (r *UserRepository) LinkGoogleID(ctx context.Context, email, googleID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET google_id=$2
		WHERE email=$1 AND google_id=''
	`, email, googleID)
	return err
}

// UpsertProfile inserts the profile or merges it into the existing row.
// Empty fields leave the stored values untouched, so a partial payload never
// wipes the rest of the profile. There is no way to clear a field back to
// empty through this path.
func (r *UserRepository) UpsertProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	joined := time.Now()
	if upd.Joined != nil {
		joined = *upd.Joined
	}
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (uid, name, email, phone, joined, address, city, pincode, landmark)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (email) DO UPDATE SET
			uid      = COALESCE(NULLIF(EXCLUDED.uid, ''), users.uid),
			name     = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
			phone    = COALESCE(NULLIF(EXCLUDED.phone, ''), users.phone),
			joined   = CASE WHEN $10 THEN EXCLUDED.joined ELSE users.joined END,
			address  = COALESCE(NULLIF(EXCLUDED.address, ''), users.address),
			city     = COALESCE(NULLIF(EXCLUDED.city, ''), users.city),
			pincode  = COALESCE(NULLIF(EXCLUDED.pincode, ''), users.pincode),
			landmark = COALESCE(NULLIF(EXCLUDED.landmark, ''), users.landmark)
		RETURNING `+userColumns+`
	`, upd.UID, upd.Name, upd.Email, upd.Phone, joined, upd.Address, upd.City,
		upd.Pincode, upd.Landmark, upd.Joined != nil).
		Scan(&u.UID, &u.Name, &u.Email, &u.Password, &u.GoogleID, &u.Phone, &u.Image,
			&u.NotificationsEnabled, &u.DarkMode, &u.Joined, &u.Address, &u.City, &u.Pincode, &u.Landmark)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE email=$1`, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
