package services

import (
	"context"
	"testing"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testProduct(id uint, price, gstRate string) *domain.Product {
	return &domain.Product{
		ID:             id,
		Name:           "Test Product",
		GeneralPrice:   decimal.RequireFromString(price),
		ArchitectPrice: decimal.RequireFromString(price),
		DealerPrice:    decimal.RequireFromString(price),
		GSTRate:        decimal.RequireFromString(gstRate),
		IsActive:       true,
	}
}

func TestAggregateLineItems(t *testing.T) {
	requester := domain.Requester{UserID: 7, Role: domain.RoleGeneral}

	tests := []struct {
		name          string
		items         []ItemInput
		setupMocks    func(*mocks.MockStore)
		wantSubtotal  string
		wantGST       string
		wantGrand     string
		wantFromCart  bool
		expectedError string
	}{
		{
			name: "explicit items with mixed GST rates",
			items: []ItemInput{
				{ProductID: 1, Quantity: 2},
				{ProductID: 2, Quantity: 3},
			},
			setupMocks: func(s *mocks.MockStore) {
				s.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{1, 2}).Return(map[uint]*domain.Product{
					1: testProduct(1, "100.00", "18"),
					2: testProduct(2, "50.50", "0"),
				}, nil)
			},
			wantSubtotal: "351.50",
			wantGST:      "36.00",
			wantGrand:    "387.50",
		},
		{
			name:  "quantity defaults to one",
			items: []ItemInput{{ProductID: 1}},
			setupMocks: func(s *mocks.MockStore) {
				s.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{1}).Return(map[uint]*domain.Product{
					1: testProduct(1, "100.00", "18"),
				}, nil)
			},
			wantSubtotal: "100.00",
			wantGST:      "18.00",
			wantGrand:    "118.00",
		},
		{
			name: "fractional GST rate rounds per line",
			items: []ItemInput{
				{ProductID: 1, Quantity: 3},
			},
			setupMocks: func(s *mocks.MockStore) {
				s.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{1}).Return(map[uint]*domain.Product{
					1: testProduct(1, "33.33", "12.5"),
				}, nil)
			},
			wantSubtotal: "99.99",
			wantGST:      "12.50",
			wantGrand:    "112.49",
		},
		{
			name: "falls back to persisted cart",
			setupMocks: func(s *mocks.MockStore) {
				s.CartRepo.On("FindAllByUser", mock.Anything, uint(7)).Return([]domain.CartItem{
					{UserID: 7, ProductID: 3, Quantity: 2},
				}, nil)
				s.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{3}).Return(map[uint]*domain.Product{
					3: testProduct(3, "10.00", "5"),
				}, nil)
			},
			wantSubtotal: "20.00",
			wantGST:      "1.00",
			wantGrand:    "21.00",
			wantFromCart: true,
		},
		{
			name: "empty cart and no explicit items",
			setupMocks: func(s *mocks.MockStore) {
				s.CartRepo.On("FindAllByUser", mock.Anything, uint(7)).Return([]domain.CartItem{}, nil)
			},
			expectedError: "at least one item",
		},
		{
			name:  "missing product",
			items: []ItemInput{{ProductID: 99, Quantity: 1}},
			setupMocks: func(s *mocks.MockStore) {
				s.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{99}).Return(map[uint]*domain.Product{}, nil)
			},
			expectedError: "product 99 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			tt.setupMocks(store)

			agg, err := AggregateLineItems(context.Background(), store, requester, tt.items)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, agg)
			} else {
				assert.NoError(t, err)
				assert.True(t, decimal.RequireFromString(tt.wantSubtotal).Equal(agg.Subtotal), "subtotal %s", agg.Subtotal)
				assert.True(t, decimal.RequireFromString(tt.wantGST).Equal(agg.GSTTotal), "gstTotal %s", agg.GSTTotal)
				assert.True(t, decimal.RequireFromString(tt.wantGrand).Equal(agg.GrandTotal), "grandTotal %s", agg.GrandTotal)
				assert.Equal(t, tt.wantFromCart, agg.FromCart)
				assert.True(t, agg.GrandTotal.Equal(Round2(agg.Subtotal.Add(agg.GSTTotal))))
			}

			store.AssertExpectations(t)
		})
	}
}

func TestAggregateLineItems_TierPricing(t *testing.T) {
	product := &domain.Product{
		ID:             1,
		GeneralPrice:   decimal.RequireFromString("100.00"),
		ArchitectPrice: decimal.RequireFromString("90.00"),
		DealerPrice:    decimal.RequireFromString("80.00"),
		GSTRate:        decimal.Zero,
	}

	for role, want := range map[domain.Role]string{
		domain.RoleDealer:    "80.00",
		domain.RoleArchitect: "90.00",
		domain.RoleGeneral:   "100.00",
	} {
		store := mocks.NewMockStore()
		store.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{1}).Return(map[uint]*domain.Product{1: product}, nil)

		agg, err := AggregateLineItems(context.Background(), store, domain.Requester{UserID: 1, Role: role}, []ItemInput{{ProductID: 1, Quantity: 1}})

		assert.NoError(t, err)
		assert.True(t, decimal.RequireFromString(want).Equal(agg.Lines[0].UnitPrice), "role %s priced %s", role, agg.Lines[0].UnitPrice)
	}
}
