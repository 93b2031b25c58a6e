package services

import (
	"context"
	"fmt"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/repository"
	"github.com/shopspring/decimal"
)

type ItemInput struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// LineDraft is one priced order line before persistence.
type LineDraft struct {
	Product   *domain.Product
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	GSTAmount decimal.Decimal
	Total     decimal.Decimal
}

// Aggregation holds the priced lines and their re-rounded running sums.
type Aggregation struct {
	Lines      []LineDraft
	Subtotal   decimal.Decimal
	GSTTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	ProductIDs []uint
	FromCart   bool
}

// AggregateLineItems prices an order: explicit request items are used
// verbatim (quantity defaults to 1), otherwise the requester's persisted
// cart is loaded. All referenced products are batch-loaded in one query.
func AggregateLineItems(ctx context.Context, store repository.Store, requester domain.Requester, items []ItemInput) (*Aggregation, error) {
	agg := &Aggregation{}

	if len(items) == 0 {
		cartLines, err := store.Carts().FindAllByUser(ctx, requester.UserID)
		if err != nil {
			return nil, err
		}
		for _, line := range cartLines {
			items = append(items, ItemInput{ProductID: line.ProductID, Quantity: line.Quantity})
		}
		agg.FromCart = true
	}

	if len(items) == 0 {
		return nil, NewValidationError("Order must contain at least one item")
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := store.Products().FindAllByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	gstTotal := decimal.Zero
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, NewNotFoundError(fmt.Sprintf("product %d", item.ProductID))
		}

		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		unitPrice := ResolvePrice(product, requester.Role)
		lineSubtotal := Round2(unitPrice.Mul(decimal.NewFromInt(int64(qty))))
		lineGST := Round2(lineSubtotal.Mul(product.GSTRate).Div(decimal.NewFromInt(100)))
		lineTotal := Round2(lineSubtotal.Add(lineGST))

		agg.Lines = append(agg.Lines, LineDraft{
			Product:   product,
			Quantity:  qty,
			UnitPrice: unitPrice,
			Subtotal:  lineSubtotal,
			GSTAmount: lineGST,
			Total:     lineTotal,
		})
		agg.ProductIDs = append(agg.ProductIDs, item.ProductID)

		subtotal = subtotal.Add(lineSubtotal)
		gstTotal = gstTotal.Add(lineGST)
	}

	agg.Subtotal = Round2(subtotal)
	agg.GSTTotal = Round2(gstTotal)
	agg.GrandTotal = Round2(agg.Subtotal.Add(agg.GSTTotal))

	return agg, nil
}
