package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/primeurdirect/primeur-api/pkg/reference"
	"github.com/shopspring/decimal"
)

// OrderService handles client orders
type OrderService struct {
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	shopRepo         repository.ShopRepository
	productService   *ProductService
	pricingService   *PricingService
	promotionService *PromotionService
	auditService     *AuditService
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	productService *ProductService,
	pricingService *PricingService,
	promotionService *PromotionService,
	auditService *AuditService,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		shopRepo:         shopRepo,
		productService:   productService,
		pricingService:   pricingService,
		promotionService: promotionService,
		auditService:     auditService,
	}
}

// OrderItemInput represents a line item input
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput represents the input for placing a direct order
type CreateOrderInput struct {
	ShopID        uuid.UUID
	UserID        uuid.UUID
	Tier          enum.TariffTier
	PromotionCode *string
	DeliveryDate  *time.Time
	Notes         *string
	Items         []OrderItemInput
}

// CreateOrder places a direct order: prices resolved and snapshotted, stock
// decremented through conditional updates, promotion validated and redeemed
// exactly once.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("an order requires at least one item")
	}

	shop, err := s.shopRepo.GetByID(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	totalHT := decimal.Zero
	totalTVA := decimal.Zero
	orderItems := make([]entity.OrderItem, 0, len(input.Items))
	decrements := make(map[uuid.UUID]int, len(input.Items))

	for _, in := range input.Items {
		// Pre-flight check so the caller learns which product is short,
		// and by how much, before any stock moves
		if err := s.productService.ValidateStock(ctx, in.ProductID, in.Quantity); err != nil {
			return nil, err
		}

		product, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}

		resolved, err := s.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: in.ProductID,
			UserID:    &shop.UserID,
			Quantity:  in.Quantity,
			Tier:      input.Tier,
		})
		if err != nil {
			return nil, err
		}

		qty := decimal.NewFromInt(int64(in.Quantity))
		lineHT := resolved.PriceHT.Mul(qty).Round(2)
		lineTVA := lineHT.Mul(resolved.TVARate).Div(decimal.NewFromInt(100)).Round(2)

		orderItems = append(orderItems, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    in.Quantity,
			PriceHT:     resolved.PriceHT,
			TVARate:     resolved.TVARate,
			TotalHT:     lineHT,
			TotalTVA:    lineTVA,
			TotalTTC:    lineHT.Add(lineTVA),
		})

		totalHT = totalHT.Add(lineHT)
		totalTVA = totalTVA.Add(lineTVA)
		decrements[in.ProductID] += in.Quantity
	}

	discount := decimal.Zero
	var promotion *entity.Promotion
	if input.PromotionCode != nil && *input.PromotionCode != "" {
		result, err := s.promotionService.Validate(ctx, *input.PromotionCode, totalHT, time.Now())
		if err != nil {
			return nil, err
		}
		discount = result.DiscountAmount
		promotion = result.Promotion
	}

	failed, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return nil, apperror.NewBadRequestError("Insufficient stock for one or more products")
	}

	totalTTC := totalHT.Add(totalTVA).Sub(discount)
	if totalTTC.IsNegative() {
		totalTTC = decimal.Zero
	}

	order := &entity.Order{
		ShopID:         input.ShopID,
		UserID:         input.UserID,
		Status:         enum.OrderStatusPending,
		TotalHT:        totalHT,
		TotalTVA:       totalTVA,
		TotalTTC:       totalTTC,
		DiscountAmount: discount,
		DeliveryDate:   input.DeliveryDate,
		Notes:          input.Notes,
		Items:          orderItems,
	}
	if promotion != nil {
		code := strings.ToUpper(promotion.Code)
		order.PromotionCode = &code
	}

	if err := reference.CreateWithRetry(reference.OrderPrefix, time.Now(), func(number string) error {
		order.OrderNumber = number
		return s.orderRepo.Create(ctx, order)
	}); err != nil {
		// Give the reserved stock back; the order never landed
		if restoreErr := s.productRepo.AtomicIncrementBatch(ctx, decrements); restoreErr != nil {
			return nil, restoreErr
		}
		return nil, err
	}

	if promotion != nil {
		if err := s.promotionService.Redeem(ctx, promotion.ID); err != nil {
			return nil, err
		}
	}

	s.auditService.Record(ctx, &input.UserID, "CREATE", "Order", &order.ID, map[string]any{
		"number": order.OrderNumber,
	})
	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrdersInput represents the input for listing orders
type ListOrdersInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	ShopID     *uuid.UUID
	UserID     *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, input *ListOrdersInput) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, &repository.OrderFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		ShopID:     input.ShopID,
		UserID:     input.UserID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateOrderStatus moves an order along the fulfilment pipeline
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus, updatedBy uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, apperror.NewConflictError("Order cannot move from " + order.Status.String() + " to " + status.String())
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	// Cancelling returns reserved stock to the shelf
	if status == enum.OrderStatusCancelled {
		full, err := s.orderRepo.GetWithItems(ctx, id)
		if err != nil {
			return nil, err
		}
		increments := make(map[uuid.UUID]int, len(full.Items))
		for _, item := range full.Items {
			increments[item.ProductID] += item.Quantity
		}
		if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
			return nil, err
		}
	}

	s.auditService.Record(ctx, &updatedBy, "STATUS_"+status.String(), "Order", &order.ID, nil)
	return order, nil
}
