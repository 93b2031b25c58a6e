package repository

import (
	"context"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	// FindAllByIDs batch-loads products keyed by id so callers resolve a
	// whole item list with one query.
	FindAllByIDs(ctx context.Context, ids []uint) (map[uint]*domain.Product, error)
	FindAllActive(ctx context.Context) ([]domain.Product, error)
}

type CartRepository interface {
	FindAllByUser(ctx context.Context, userID uint) ([]domain.CartItem, error)
	Upsert(ctx context.Context, item *domain.CartItem) error
	DeleteByUserAndProducts(ctx context.Context, userID uint, productIDs []uint) error
}

type AddressRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.ShippingAddress, error)
	// FindAllByUser returns the user's records newest first.
	FindAllByUser(ctx context.Context, userID uint) ([]domain.ShippingAddress, error)
	Create(ctx context.Context, addr *domain.ShippingAddress) error
	ClearDefaultForUser(ctx context.Context, userID uint) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type OrderRepository interface {
	// Create persists the order together with its items.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindAllByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error
}

// Store aggregates the repositories over one database handle.
// WithinTransaction runs fn against a Store bound to a single transaction;
// an error from fn rolls everything back exactly once.
type Store interface {
	Products() ProductRepository
	Carts() CartRepository
	Addresses() AddressRepository
	Users() UserRepository
	Orders() OrderRepository
	WithinTransaction(ctx context.Context, fn func(Store) error) error
}
