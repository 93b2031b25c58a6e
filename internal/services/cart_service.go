package services

import (
	"context"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CartLineView is one cart line priced for the requester's role.
type CartLineView struct {
	Product  domain.ProductView `json:"product"`
	Quantity int                `json:"quantity"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

type CartView struct {
	Lines    []CartLineView  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartService struct {
	store repository.Store
	log   *logrus.Logger
}

func NewCartService(store repository.Store, log *logrus.Logger) *CartService {
	return &CartService{store: store, log: log}
}

func (s *CartService) AddItem(ctx context.Context, requester domain.Requester, productID uint, quantity int) error {
	if quantity < 1 {
		return NewValidationError("quantity must be at least 1")
	}

	product, err := s.store.Products().FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return NewNotFoundError("product")
	}

	return s.store.Carts().Upsert(ctx, &domain.CartItem{
		UserID:    requester.UserID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (s *CartService) RemoveItem(ctx context.Context, requester domain.Requester, productID uint) error {
	return s.store.Carts().DeleteByUserAndProducts(ctx, requester.UserID, []uint{productID})
}

// GetCart returns the requester's cart with per-line subtotals at their
// tier price.
func (s *CartService) GetCart(ctx context.Context, requester domain.Requester) (*CartView, error) {
	lines, err := s.store.Carts().FindAllByUser(ctx, requester.UserID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Subtotal: decimal.Zero}
	for _, line := range lines {
		if line.Product == nil {
			continue
		}
		unitPrice := ResolvePrice(line.Product, requester.Role)
		subtotal := Round2(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		view.Lines = append(view.Lines, CartLineView{
			Product:  ProjectProduct(line.Product, requester.Role),
			Quantity: line.Quantity,
			Subtotal: subtotal,
		})
		view.Subtotal = view.Subtotal.Add(subtotal)
	}
	view.Subtotal = Round2(view.Subtotal)

	return view, nil
}
