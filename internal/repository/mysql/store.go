package mysql

import (
	"context"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/repository"
	"gorm.io/gorm"
)

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) repository.Store {
	return &store{db: db}
}

func (s *store) Products() repository.ProductRepository  { return &productRepo{db: s.db} }
func (s *store) Carts() repository.CartRepository        { return &cartRepo{db: s.db} }
func (s *store) Addresses() repository.AddressRepository { return &addressRepo{db: s.db} }
func (s *store) Users() repository.UserRepository        { return &userRepo{db: s.db} }
func (s *store) Orders() repository.OrderRepository      { return &orderRepo{db: s.db} }

// WithinTransaction rebinds the store onto a gorm transaction. gorm commits
// when fn returns nil and rolls back once on error or panic.
func (s *store) WithinTransaction(ctx context.Context, fn func(repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}
