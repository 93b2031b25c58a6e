package mysql

import (
	"context"
	"errors"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"gorm.io/gorm"
)

type addressRepo struct {
	db *gorm.DB
}

func (r *addressRepo) FindByID(ctx context.Context, id uint) (*domain.ShippingAddress, error) {
	var a domain.ShippingAddress
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *addressRepo) FindAllByUser(ctx context.Context, userID uint) ([]domain.ShippingAddress, error) {
	var addrs []domain.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addrs).Error
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *addressRepo) Create(ctx context.Context, addr *domain.ShippingAddress) error {
	return r.db.WithContext(ctx).Create(addr).Error
}

func (r *addressRepo) ClearDefaultForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&domain.ShippingAddress{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
