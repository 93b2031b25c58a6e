package mocks

import (
	"context"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllByIDs(ctx context.Context, ids []uint) (map[uint]*domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllActive(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindAllByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUserAndProducts(ctx context.Context, userID uint, productIDs []uint) error {
	args := m.Called(ctx, userID, productIDs)
	return args.Error(0)
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uint) (*domain.ShippingAddress, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShippingAddress), args.Error(1)
}

func (m *MockAddressRepository) FindAllByUser(ctx context.Context, userID uint) ([]domain.ShippingAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShippingAddress), args.Error(1)
}

func (m *MockAddressRepository) Create(ctx context.Context, addr *domain.ShippingAddress) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *MockAddressRepository) ClearDefaultForUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

// MockStore aggregates the repository mocks. WithinTransaction runs fn
// against the same store, so transactional code paths are exercised without
// a database.
type MockStore struct {
	ProductRepo *MockProductRepository
	CartRepo    *MockCartRepository
	AddressRepo *MockAddressRepository
	UserRepo    *MockUserRepository
	OrderRepo   *MockOrderRepository
}

func NewMockStore() *MockStore {
	return &MockStore{
		ProductRepo: new(MockProductRepository),
		CartRepo:    new(MockCartRepository),
		AddressRepo: new(MockAddressRepository),
		UserRepo:    new(MockUserRepository),
		OrderRepo:   new(MockOrderRepository),
	}
}

func (s *MockStore) Products() repository.ProductRepository  { return s.ProductRepo }
func (s *MockStore) Carts() repository.CartRepository        { return s.CartRepo }
func (s *MockStore) Addresses() repository.AddressRepository { return s.AddressRepo }
func (s *MockStore) Users() repository.UserRepository        { return s.UserRepo }
func (s *MockStore) Orders() repository.OrderRepository      { return s.OrderRepo }

func (s *MockStore) WithinTransaction(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *MockStore) AssertExpectations(t mock.TestingT) {
	s.ProductRepo.AssertExpectations(t)
	s.CartRepo.AssertExpectations(t)
	s.AddressRepo.AssertExpectations(t)
	s.UserRepo.AssertExpectations(t)
	s.OrderRepo.AssertExpectations(t)
}
