package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// OrderService implements purchase orders and their line items.
type OrderService struct {
	orders     repository.OrderRepository
	items      repository.OrderItemRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, items repository.OrderItemRepository, products repository.ProductRepository, users repository.UserRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, items: items, products: products, users: users, dispatcher: dispatcher}
}

// OrderInput carries create/update fields for purchase orders.
type OrderInput struct {
	UserID      *int64
	OrderDate   *time.Time
	TotalAmount *float64
}

// OrderItemInput carries create/update fields for order lines.
type OrderItemInput struct {
	OrderID         *int64
	ProductID       *int64
	Quantity        *int
	PriceAtPurchase *float64
}

// CreateOrder adds an order for an existing user.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderInput) (*domain.PurchaseOrder, error) {
	if input.UserID == nil {
		return nil, apperrors.NewValidationError("user_id is required", nil)
	}
	if _, err := s.users.GetByID(ctx, *input.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": *input.UserID})
		}
		return nil, err
	}

	order := &domain.PurchaseOrder{UserID: *input.UserID}
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	} else {
		order.OrderDate = time.Now()
	}
	if input.TotalAmount != nil {
		order.TotalAmount = *input.TotalAmount
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderCreated, events.OrderCreatedPayload{
		OrderID:     order.ID,
		UserID:      order.UserID,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
	})
	return order, nil
}

// ListOrders returns all orders.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	return s.orders.List(ctx)
}

// GetOrder fetches one order.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, err
	}
	return order, nil
}

// UpdateOrder patches an order. A changed user is re-validated against the
// store.
func (s *OrderService) UpdateOrder(ctx context.Context, id int64, input OrderInput) (*domain.PurchaseOrder, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.UserID != nil {
		if _, err := s.users.GetByID(ctx, *input.UserID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("user", map[string]any{"id": *input.UserID})
			}
			return nil, err
		}
		order.UserID = *input.UserID
	}
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}
	if input.TotalAmount != nil {
		order.TotalAmount = *input.TotalAmount
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order; its lines go with it via the FK cascade.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// SearchOrders filters by owner username substring and order date range.
func (s *OrderService) SearchOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.PurchaseOrder, error) {
	return s.orders.Search(ctx, filter)
}

// CreateOrderItem adds a line to an existing order. When no price is supplied
// the product's current price is frozen into the line.
func (s *OrderService) CreateOrderItem(ctx context.Context, input OrderItemInput) (*domain.OrderItem, error) {
	if input.OrderID == nil || input.ProductID == nil || input.Quantity == nil {
		return nil, apperrors.NewValidationError("order_id, product_id and quantity are required", nil)
	}
	if _, err := s.GetOrder(ctx, *input.OrderID); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, *input.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": *input.ProductID})
		}
		return nil, err
	}

	price := product.Price
	if input.PriceAtPurchase != nil {
		price = *input.PriceAtPurchase
	}

	item := &domain.OrderItem{
		OrderID:         *input.OrderID,
		ProductID:       *input.ProductID,
		Quantity:        *input.Quantity,
		PriceAtPurchase: price,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderItemAdded, events.OrderItemAddedPayload{
		ItemID:          item.ID,
		OrderID:         item.OrderID,
		ProductID:       item.ProductID,
		Quantity:        item.Quantity,
		PriceAtPurchase: item.PriceAtPurchase,
	})
	return item, nil
}

// ListOrderItems returns all order lines.
func (s *OrderService) ListOrderItems(ctx context.Context) ([]domain.OrderItem, error) {
	return s.items.List(ctx)
}

// ListOrderItemsByOrder returns the lines of one order.
func (s *OrderService) ListOrderItemsByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	return s.items.ListByOrder(ctx, orderID)
}

// GetOrderItem fetches one order line.
func (s *OrderService) GetOrderItem(ctx context.Context, id int64) (*domain.OrderItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order item", map[string]any{"id": id})
		}
		return nil, err
	}
	return item, nil
}

// UpdateOrderItem patches an order line. Changed order/product references are
// re-validated.
func (s *OrderService) UpdateOrderItem(ctx context.Context, id int64, input OrderItemInput) (*domain.OrderItem, error) {
	item, err := s.GetOrderItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.OrderID != nil {
		if _, err := s.GetOrder(ctx, *input.OrderID); err != nil {
			return nil, err
		}
		item.OrderID = *input.OrderID
	}
	if input.ProductID != nil {
		if _, err := s.products.GetByID(ctx, *input.ProductID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("product", map[string]any{"id": *input.ProductID})
			}
			return nil, err
		}
		item.ProductID = *input.ProductID
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.PriceAtPurchase != nil {
		item.PriceAtPurchase = *input.PriceAtPurchase
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteOrderItem removes an order line.
func (s *OrderService) DeleteOrderItem(ctx context.Context, id int64) error {
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order item", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// SearchOrderItems filters by product name substring and optional order.
func (s *OrderService) SearchOrderItems(ctx context.Context, filter repository.OrderItemFilter) ([]domain.OrderItem, error) {
	return s.items.Search(ctx, filter)
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
