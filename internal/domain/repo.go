package domain

import "context"

// OrderRepository is the primary-store contract for orders. Create assigns
// OrderID and Date on the passed order.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	Update(ctx context.Context, orderID string, upd OrderUpdate) (*Order, error)
	Delete(ctx context.Context, orderID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	LinkGoogleID(ctx context.Context, email, googleID string) error
	UpsertProfile(ctx context.Context, upd ProfileUpdate) (*User, error)
	DeleteByEmail(ctx context.Context, email string) error
}
