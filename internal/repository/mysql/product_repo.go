package mysql

import (
	"context"
	"errors"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindAllByIDs(ctx context.Context, ids []uint) (map[uint]*domain.Product, error) {
	var products []domain.Product
	if err := r.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func (r *productRepo) FindAllActive(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
