package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func completeUser() *domain.User {
	return &domain.User{
		ID: 7, Name: "Asha Rao", Phone: "9876543210",
		Street: "12 MG Road", City: "Chennai", State: "Tamil Nadu",
		Country: "India", PostalCode: "600001",
	}
}

func newTestOrderService(store *mocks.MockStore, publisher *mocks.MockPublisher) *OrderService {
	logger := testLogger()
	return NewOrderService(store, NewAddressResolver(store, logger), publisher, logger)
}

func TestOrderService_CreateOrder(t *testing.T) {
	requester := domain.Requester{UserID: 7, Role: domain.RoleGeneral}

	tests := []struct {
		name          string
		input         CreateOrderInput
		setupMocks    func(*mocks.MockStore, *mocks.MockPublisher)
		check         func(*testing.T, *domain.Order)
		expectedError string
		wantNoOrder   bool
	}{
		{
			name: "successful creation with explicit items",
			input: CreateOrderInput{
				PaymentMethod: "gpay",
				Items: []ItemInput{
					{ProductID: 1, Quantity: 2},
					{ProductID: 2, Quantity: 3},
				},
			},
			setupMocks: func(s *mocks.MockStore, pub *mocks.MockPublisher) {
				s.UserRepo.On("FindByID", mock.Anything, uint(7)).Return(completeUser(), nil)
				s.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{1, 2}).Return(map[uint]*domain.Product{
					1: testProduct(1, "100.00", "18"),
					2: testProduct(2, "50.50", "0"),
				}, nil)
				s.OrderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Order).ID = 1
				})
				s.CartRepo.On("DeleteByUserAndProducts", mock.Anything, uint(7), []uint{1, 2}).Return(nil)
				pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, domain.StatusPending, o.Status)
				assert.Equal(t, domain.PaymentStatusPending, o.PaymentStatus)
				assert.Equal(t, domain.PaymentUPI, o.PaymentMethod)
				assert.True(t, decimal.RequireFromString("351.50").Equal(o.Subtotal), "subtotal %s", o.Subtotal)
				assert.True(t, decimal.RequireFromString("36.00").Equal(o.GSTTotal), "gstTotal %s", o.GSTTotal)
				assert.True(t, decimal.RequireFromString("387.50").Equal(o.GrandTotal), "grandTotal %s", o.GrandTotal)
				assert.Len(t, o.Items, 2)
				assert.Equal(t, domain.AddressTypeDefault, o.DeliveryAddress.Type)
				assert.Equal(t, domain.AddressSourceProfile, o.DeliveryAddress.Source)
				assert.NotEmpty(t, o.OrderNumber)
			},
		},
		{
			name:  "empty cart and no explicit items rolls back",
			input: CreateOrderInput{PaymentMethod: "cod"},
			setupMocks: func(s *mocks.MockStore, pub *mocks.MockPublisher) {
				s.UserRepo.On("FindByID", mock.Anything, uint(7)).Return(completeUser(), nil)
				s.CartRepo.On("FindAllByUser", mock.Anything, uint(7)).Return([]domain.CartItem{}, nil)
			},
			expectedError: "at least one item",
			wantNoOrder:   true,
		},
		{
			name: "shipping address owned by another user",
			input: CreateOrderInput{
				PaymentMethod: "cod",
				Items:         []ItemInput{{ProductID: 1, Quantity: 1}},
				Address:       AddressRequest{Type: domain.AddressTypeShipping, ShippingAddressID: 6},
			},
			setupMocks: func(s *mocks.MockStore, pub *mocks.MockPublisher) {
				s.AddressRepo.On("FindByID", mock.Anything, uint(6)).Return(&domain.ShippingAddress{ID: 6, UserID: 99}, nil)
			},
			expectedError: "shipping address not found",
			wantNoOrder:   true,
		},
		{
			name: "cart clear failure does not fail the order",
			input: CreateOrderInput{
				PaymentMethod: "gateway",
				Items:         []ItemInput{{ProductID: 1, Quantity: 1}},
			},
			setupMocks: func(s *mocks.MockStore, pub *mocks.MockPublisher) {
				s.UserRepo.On("FindByID", mock.Anything, uint(7)).Return(completeUser(), nil)
				s.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{1}).Return(map[uint]*domain.Product{
					1: testProduct(1, "100.00", "18"),
				}, nil)
				s.OrderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
				s.CartRepo.On("DeleteByUserAndProducts", mock.Anything, uint(7), []uint{1}).Return(errors.New("cart table locked"))
				pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, domain.PaymentGateway, o.PaymentMethod)
			},
		},
		{
			name: "unknown payment method passes through unchanged",
			input: CreateOrderInput{
				PaymentMethod: "barter",
				Items:         []ItemInput{{ProductID: 1, Quantity: 1}},
			},
			setupMocks: func(s *mocks.MockStore, pub *mocks.MockPublisher) {
				s.UserRepo.On("FindByID", mock.Anything, uint(7)).Return(completeUser(), nil)
				s.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{1}).Return(map[uint]*domain.Product{
					1: testProduct(1, "100.00", "18"),
				}, nil)
				s.OrderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
				s.CartRepo.On("DeleteByUserAndProducts", mock.Anything, uint(7), []uint{1}).Return(nil)
				pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, domain.PaymentMethod("barter"), o.PaymentMethod)
			},
		},
		{
			name: "persistence error propagates",
			input: CreateOrderInput{
				PaymentMethod: "cod",
				Items:         []ItemInput{{ProductID: 1, Quantity: 1}},
			},
			setupMocks: func(s *mocks.MockStore, pub *mocks.MockPublisher) {
				s.UserRepo.On("FindByID", mock.Anything, uint(7)).Return(completeUser(), nil)
				s.ProductRepo.On("FindAllByIDs", mock.Anything, []uint{1}).Return(map[uint]*domain.Product{
					1: testProduct(1, "100.00", "18"),
				}, nil)
				s.OrderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(errors.New("database error"))
			},
			expectedError: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			publisher := new(mocks.MockPublisher)
			tt.setupMocks(store, publisher)

			service := newTestOrderService(store, publisher)
			order, err := service.CreateOrder(context.Background(), requester, tt.input)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, order)
				if tt.wantNoOrder {
					store.OrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				if tt.check != nil {
					tt.check(t, order)
				}
			}

			time.Sleep(50 * time.Millisecond)
			store.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestOrderService_CancelOrder(t *testing.T) {
	tests := []struct {
		name          string
		requester     domain.Requester
		order         *domain.Order
		expectCancel  bool
		expectedError string
	}{
		{
			name:         "owner cancels pending order",
			requester:    domain.Requester{UserID: 7, Role: domain.RoleGeneral},
			order:        &domain.Order{ID: 1, UserID: 7, Status: domain.StatusPending},
			expectCancel: true,
		},
		{
			name:          "owner cannot cancel shipped order",
			requester:     domain.Requester{UserID: 7, Role: domain.RoleGeneral},
			order:         &domain.Order{ID: 1, UserID: 7, Status: domain.StatusShipped},
			expectedError: "cannot be cancelled",
		},
		{
			name:         "staff cancels shipped order",
			requester:    domain.Requester{UserID: 2, Role: domain.RoleAdmin},
			order:        &domain.Order{ID: 1, UserID: 7, Status: domain.StatusShipped},
			expectCancel: true,
		},
		{
			name:          "staff cannot cancel twice",
			requester:     domain.Requester{UserID: 2, Role: domain.RoleAdmin},
			order:         &domain.Order{ID: 1, UserID: 7, Status: domain.StatusCancelled},
			expectedError: "cannot be cancelled",
		},
		{
			name:          "non-owner gets not found",
			requester:     domain.Requester{UserID: 8, Role: domain.RoleGeneral},
			order:         &domain.Order{ID: 1, UserID: 7, Status: domain.StatusPending},
			expectedError: "order not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			publisher := new(mocks.MockPublisher)

			store.OrderRepo.On("FindByID", mock.Anything, uint(1)).Return(tt.order, nil)
			if tt.expectCancel {
				store.OrderRepo.On("UpdateStatus", mock.Anything, uint(1), domain.StatusCancelled).Return(nil)
				publisher.On("Publish", mock.Anything, "order.cancelled", mock.Anything).Return(nil).Maybe()
			}

			service := newTestOrderService(store, publisher)
			order, err := service.CancelOrder(context.Background(), tt.requester, 1)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, order)
				store.OrderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.StatusCancelled, order.Status)
			}

			time.Sleep(50 * time.Millisecond)
			store.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		current       domain.OrderStatus
		next          domain.OrderStatus
		expectedError string
	}{
		{"pending to processing", domain.StatusPending, domain.StatusProcessing, ""},
		{"processing to shipped", domain.StatusProcessing, domain.StatusShipped, ""},
		{"shipped to completed", domain.StatusShipped, domain.StatusCompleted, ""},
		{"pending cannot skip to completed", domain.StatusPending, domain.StatusCompleted, "cannot transition"},
		{"completed is terminal", domain.StatusCompleted, domain.StatusProcessing, "cannot transition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			store.OrderRepo.On("FindByID", mock.Anything, uint(1)).Return(&domain.Order{ID: 1, UserID: 7, Status: tt.current}, nil)
			if tt.expectedError == "" {
				store.OrderRepo.On("UpdateStatus", mock.Anything, uint(1), tt.next).Return(nil)
			}

			service := newTestOrderService(store, new(mocks.MockPublisher))
			order, err := service.UpdateStatus(context.Background(), 1, tt.next)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.next, order.Status)
			}

			store.AssertExpectations(t)
		})
	}
}

func TestOrderService_GetOrder(t *testing.T) {
	stored := &domain.Order{ID: 1, UserID: 7, Status: domain.StatusPending}

	tests := []struct {
		name      string
		requester domain.Requester
		found     *domain.Order
		wantErr   bool
	}{
		{"owner reads own order", domain.Requester{UserID: 7, Role: domain.RoleGeneral}, stored, false},
		{"staff reads any order", domain.Requester{UserID: 2, Role: domain.RoleManager}, stored, false},
		{"stranger gets not found", domain.Requester{UserID: 8, Role: domain.RoleGeneral}, stored, true},
		{"missing order", domain.Requester{UserID: 7, Role: domain.RoleGeneral}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			if tt.found != nil {
				store.OrderRepo.On("FindByID", mock.Anything, uint(1)).Return(tt.found, nil)
			} else {
				store.OrderRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, nil)
			}

			service := newTestOrderService(store, new(mocks.MockPublisher))
			order, err := service.GetOrder(context.Background(), tt.requester, 1)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(1), order.ID)
			}
		})
	}
}
