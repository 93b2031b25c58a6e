package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/infra/rabbitmq"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/repository"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CreateOrderInput struct {
	PaymentMethod        string
	Items                []ItemInput
	Address              AddressRequest
	Notes                string
	ExpectedDeliveryDate *time.Time
}

// OrderService orchestrates order creation: address resolution, line-item
// aggregation and persistence of the order with its items inside one
// database transaction.
type OrderService struct {
	store       repository.Store
	addresses   *AddressResolver
	publisher   rabbitmq.PublisherInterface
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewOrderService(store repository.Store, addresses *AddressResolver, publisher rabbitmq.PublisherInterface, log *logrus.Logger) *OrderService {
	return &OrderService{
		store:     store,
		addresses: addresses,
		publisher: publisher,
		log:       log,
	}
}

func (s *OrderService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + id[:12]
}

// CreateOrder runs the full pipeline. The address is resolved before the
// transaction opens, so an address record created for a "new" intent
// survives even when the order itself fails; this looseness is inherited
// from the original system and kept deliberately.
func (s *OrderService) CreateOrder(ctx context.Context, requester domain.Requester, in CreateOrderInput) (*domain.Order, error) {
	method := domain.NormalizePaymentMethod(in.PaymentMethod)

	snapshot, err := s.addresses.Resolve(ctx, requester, in.Address)
	if err != nil {
		return nil, err
	}

	var order *domain.Order
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		agg, err := AggregateLineItems(ctx, tx, requester, in.Items)
		if err != nil {
			return err
		}

		order = &domain.Order{
			OrderNumber:          newOrderNumber(),
			UserID:               requester.UserID,
			Status:               domain.StatusPending,
			PaymentStatus:        domain.PaymentStatusPending,
			PaymentMethod:        method,
			Subtotal:             agg.Subtotal,
			GSTTotal:             agg.GSTTotal,
			GrandTotal:           agg.GrandTotal,
			DeliveryAddress:      snapshot,
			Notes:                in.Notes,
			ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		}
		for _, line := range agg.Lines {
			order.Items = append(order.Items, domain.OrderItem{
				ProductID:    line.Product.ID,
				ProductName:  line.Product.Name,
				ProductImage: line.Product.ImageURL,
				Quantity:     line.Quantity,
				UnitPrice:    line.UnitPrice,
				Subtotal:     line.Subtotal,
				GSTAmount:    line.GSTAmount,
				Total:        line.Total,
			})
		}

		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		// Best-effort: a failed cart clear must never fail the order.
		if err := tx.Carts().DeleteByUserAndProducts(ctx, requester.UserID, agg.ProductIDs); err != nil {
			s.log.WithError(err).WithField("orderId", order.ID).
				Warn("failed to clear cart after order creation")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.publishOrderCreated(context.Background(), order)
	s.invalidateOrderCache(ctx, requester.UserID)

	return order, nil
}

// GetOrder returns the order when the requester owns it or is staff.
func (s *OrderService) GetOrder(ctx context.Context, requester domain.Requester, orderID uint) (*domain.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (!requester.Role.IsStaff() && order.UserID != requester.UserID) {
		return nil, NewNotFoundError("order")
	}
	return order, nil
}

// ListOrders returns the requester's orders, newest first, with a short
// redis cache in front when a client is configured.
func (s *OrderService) ListOrders(ctx context.Context, requester domain.Requester) ([]domain.Order, error) {
	cacheKey := orderCacheKey(requester.UserID)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var orders []domain.Order
			if err := json.Unmarshal([]byte(cached), &orders); err == nil {
				return orders, nil
			}
		}
	}

	orders, err := s.store.Orders().FindAllByUser(ctx, requester.UserID)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(orders); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, 10*time.Second)
		}
	}

	return orders, nil
}

// CancelOrder applies the cancellation policy: non-staff may cancel their
// own orders only while pending, staff may cancel any order that is not
// already cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, requester domain.Requester, orderID uint) (*domain.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (!requester.Role.IsStaff() && order.UserID != requester.UserID) {
		return nil, NewNotFoundError("order")
	}

	if !order.CancellableBy(requester.Role) {
		return nil, NewValidationError(fmt.Sprintf("order in status %s cannot be cancelled", order.Status))
	}

	if err := s.store.Orders().UpdateStatus(ctx, order.ID, domain.StatusCancelled); err != nil {
		return nil, err
	}
	order.Status = domain.StatusCancelled

	go s.publishOrderCancelled(context.Background(), order, requester.UserID)
	s.invalidateOrderCache(ctx, order.UserID)

	return order, nil
}

// UpdateStatus moves an order along the forward lifecycle. Staff only;
// the handler enforces the role gate.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NewNotFoundError("order")
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, NewValidationError(fmt.Sprintf("cannot transition order from %s to %s", order.Status, status))
	}

	if err := s.store.Orders().UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status
	s.invalidateOrderCache(ctx, order.UserID)

	return order, nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		PaymentMethod: order.PaymentMethod,
		GrandTotal:    order.GrandTotal,
		ItemCount:     len(order.Items),
		CreatedAt:     order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		s.log.WithError(err).WithField("orderId", order.ID).Warn("failed to publish order.created")
	}
}

func (s *OrderService) publishOrderCancelled(ctx context.Context, order *domain.Order, cancelledBy uint) {
	evt := domain.OrderCancelledEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		CancelledBy: cancelledBy,
		CancelledAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, "order.cancelled", evt); err != nil {
		s.log.WithError(err).WithField("orderId", order.ID).Warn("failed to publish order.cancelled")
	}
}

func (s *OrderService) invalidateOrderCache(ctx context.Context, userID uint) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Del(ctx, orderCacheKey(userID))
}

func orderCacheKey(userID uint) string {
	return fmt.Sprintf("orders:user:%d", userID)
}
