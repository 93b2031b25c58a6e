package mysql

import (
	"context"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepo struct {
	db *gorm.DB
}

func (r *cartRepo) FindAllByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.db.WithContext(ctx).Preload("Product").Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert adds the quantity onto an existing (user, product) line or creates
// a new one.
func (r *cartRepo) Upsert(ctx context.Context, item *domain.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", item.Quantity)}),
	}).Create(item).Error
}

func (r *cartRepo) DeleteByUserAndProducts(ctx context.Context, userID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&domain.CartItem{}).Error
}
