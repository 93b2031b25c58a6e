package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
}

// Product carries three tier prices selected by requester role. Write-side
// validation elsewhere guarantees dealerPrice <= architectPrice <= generalPrice.
type Product struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`

	CategoryID uint      `json:"categoryId" gorm:"index"`
	Category   *Category `json:"category,omitempty"`

	GeneralPrice   decimal.Decimal `json:"generalPrice" gorm:"type:decimal(10,2);not null"`
	ArchitectPrice decimal.Decimal `json:"architectPrice" gorm:"type:decimal(10,2);not null"`
	DealerPrice    decimal.Decimal `json:"dealerPrice" gorm:"type:decimal(10,2);not null"`

	// GST percentage applied per line, e.g. 18 or 12.5.
	GSTRate decimal.Decimal `json:"gstRate" gorm:"type:decimal(5,2);not null;default:0"`

	IsActive bool `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ProductView is the client-facing projection of a product with the single
// price applicable to the requester's role.
type ProductView struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	GSTRate     decimal.Decimal `json:"gstRate"`
	IsActive    bool            `json:"isActive"`
}
