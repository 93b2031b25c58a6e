package domain

import "time"

// CartItem is one (user, product) line in the persisted cart. The composite
// unique index keeps a single line per product per user.
type CartItem struct {
	ID        uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint     `json:"userId" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint     `json:"productId" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity" gorm:"not null;default:1"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
