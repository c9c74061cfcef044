package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/request"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/response"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create places a direct order, decrementing stock and redeeming any
// promotion code atomically
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID: "+item.ProductID)
			return
		}
		items = append(items, service.OrderItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		ShopID:        shopID,
		UserID:        *actor,
		Tier:          parseTariffTier(req.Tier),
		PromotionCode: req.PromotionCode,
		DeliveryDate:  req.DeliveryDate,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created", order)
}

// Get handles retrieving a single order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// List handles listing orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListOrdersInput{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	if filter.Status != "" {
		status, ok := enum.ParseOrderStatus(filter.Status)
		if !ok {
			response.BadRequest(c, "Invalid order status")
			return
		}
		input.Status = &status
	}
	if filter.ShopID != "" {
		if id, err := uuid.Parse(filter.ShopID); err == nil {
			input.ShopID = &id
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Orders retrieved", result)
}

// UpdateStatus moves an order through the fulfilment pipeline.
// Cancelling restores the reserved stock.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	status, ok := enum.ParseOrderStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Invalid order status")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, status, *actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated", order)
}
