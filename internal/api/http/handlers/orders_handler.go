package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/api/dto"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
	"github.com/spec-kit/commerce-service/internal/service"
)

// OrdersHandler exposes purchase orders and their line items. Reading a
// single order is allowed for its owner or an admin; everything else on the
// surface is admin-gated in the router except order creation, which any
// authenticated user may do for their own account.
type OrdersHandler struct {
	orders  *service.OrderService
	decider *auth.Decider
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService, decider *auth.Decider) *OrdersHandler {
	return &OrdersHandler{orders: orderService, decider: decider}
}

// Create handles POST /api/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	if !h.decider.IsSelfOrRole(c.Context(), principal, req.UserID, domain.RoleAdmin) {
		return fiber.NewError(http.StatusForbidden, "forbidden")
	}

	input := service.OrderInput{UserID: &req.UserID, TotalAmount: req.TotalAmount}
	if req.OrderDate != nil {
		input.OrderDate = &req.OrderDate.Time
	}

	order, err := h.orders.CreateOrder(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(orders)})
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.orders.GetOrder(c.Context(), id)
	if err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	if !h.decider.IsSelfOrRole(c.Context(), principal, order.UserID, domain.RoleAdmin) {
		return fiber.NewError(http.StatusForbidden, "forbidden")
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Update handles PUT /api/orders/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.OrderUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.OrderInput{UserID: req.UserID, TotalAmount: req.TotalAmount}
	if req.OrderDate != nil {
		input.OrderDate = &req.OrderDate.Time
	}

	order, err := h.orders.UpdateOrder(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Delete handles DELETE /api/orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.orders.DeleteOrder(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Search handles GET /api/orders/search?username=&from=&to=.
func (h *OrdersHandler) Search(c *fiber.Ctx) error {
	filter := repository.OrderFilter{}
	if raw := c.Query("username"); raw != "" {
		filter.Username = &raw
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid from date")
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid to date")
		}
		filter.To = &to
	}

	orders, err := h.orders.SearchOrders(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(orders)})
}

// ListItemsByOrder handles GET /api/orders/:id/items.
func (h *OrdersHandler) ListItemsByOrder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.orders.GetOrder(c.Context(), id)
	if err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	if !h.decider.IsSelfOrRole(c.Context(), principal, order.UserID, domain.RoleAdmin) {
		return fiber.NewError(http.StatusForbidden, "forbidden")
	}

	items, err := h.orders.ListOrderItemsByOrder(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderItemResponses(items)})
}

// CreateItem handles POST /api/order-items.
func (h *OrdersHandler) CreateItem(c *fiber.Ctx) error {
	var req dto.OrderItemCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	item, err := h.orders.CreateOrderItem(c.Context(), service.OrderItemInput{
		OrderID:         &req.OrderID,
		ProductID:       &req.ProductID,
		Quantity:        &req.Quantity,
		PriceAtPurchase: req.PriceAtPurchase,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderItemResponse(item)})
}

// ListItems handles GET /api/order-items and its search query parameters.
func (h *OrdersHandler) ListItems(c *fiber.Ctx) error {
	filter := repository.OrderItemFilter{}
	if raw := c.Query("product_name"); raw != "" {
		filter.ProductName = &raw
	}
	orderID, err := queryInt64(c, "order_id")
	if err != nil {
		return err
	}
	filter.OrderID = orderID

	var items []domain.OrderItem
	if filter.ProductName == nil && filter.OrderID == nil {
		items, err = h.orders.ListOrderItems(c.Context())
	} else {
		items, err = h.orders.SearchOrderItems(c.Context(), filter)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderItemResponses(items)})
}

// GetItem handles GET /api/order-items/:id.
func (h *OrdersHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.orders.GetOrderItem(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderItemResponse(item)})
}

// UpdateItem handles PUT /api/order-items/:id.
func (h *OrdersHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.OrderItemUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	item, err := h.orders.UpdateOrderItem(c.Context(), id, service.OrderItemInput{
		OrderID:         req.OrderID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		PriceAtPurchase: req.PriceAtPurchase,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderItemResponse(item)})
}

// DeleteItem handles DELETE /api/order-items/:id.
func (h *OrdersHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.orders.DeleteOrderItem(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
