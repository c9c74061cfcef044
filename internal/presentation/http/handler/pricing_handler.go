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

// PricingHandler handles tariff, volume and client pricing HTTP requests
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// Resolve returns the effective unit price for a product, quantity and client
func (h *PricingHandler) Resolve(c *gin.Context) {
	var req request.ResolvePriceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	input := &service.ResolvePriceInput{
		ProductID: productID,
		Quantity:  req.Quantity,
		Tier:      parseTariffTier(req.Tier),
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		input.UserID = &userID
	} else {
		input.UserID = GetUserID(c)
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	resolved, err := h.pricingService.ResolvePrice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price resolved", resolved)
}

// CreateVolumePricing defines a quantity bracket price for a product
func (h *PricingHandler) CreateVolumePricing(c *gin.Context) {
	var req request.CreateVolumePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	vp, err := h.pricingService.CreateVolumePricing(c.Request.Context(), &service.CreateVolumePricingInput{
		ProductID:       productID,
		MinQuantity:     req.MinQuantity,
		MaxQuantity:     req.MaxQuantity,
		PriceHT:         req.PriceHT,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Volume pricing created", vp)
}

// UpdateVolumePricing updates a quantity bracket price
func (h *PricingHandler) UpdateVolumePricing(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid volume pricing ID")
		return
	}

	var req request.UpdateVolumePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	vp, err := h.pricingService.UpdateVolumePricing(c.Request.Context(), &service.UpdateVolumePricingInput{
		ID:              id,
		MinQuantity:     req.MinQuantity,
		MaxQuantity:     req.MaxQuantity,
		PriceHT:         req.PriceHT,
		DiscountPercent: req.DiscountPercent,
		IsActive:        req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Volume pricing updated", vp)
}

// DeleteVolumePricing removes a quantity bracket price
func (h *PricingHandler) DeleteVolumePricing(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid volume pricing ID")
		return
	}

	if err := h.pricingService.DeleteVolumePricing(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Volume pricing deleted", nil)
}

// ListVolumePricing lists the brackets of a product
func (h *PricingHandler) ListVolumePricing(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	brackets, err := h.pricingService.ListVolumePricing(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Volume pricing retrieved", brackets)
}

// CreateClientPricing defines a client-specific price
func (h *PricingHandler) CreateClientPricing(c *gin.Context) {
	var req request.CreateClientPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	cp, err := h.pricingService.CreateClientPricing(c.Request.Context(), &service.CreateClientPricingInput{
		ProductID:  productID,
		UserID:     userID,
		PriceHT:    req.PriceHT,
		PriceHTT2:  req.PriceHTT2,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client pricing created", cp)
}

// UpdateClientPricing updates a client-specific price
func (h *PricingHandler) UpdateClientPricing(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid client pricing ID")
		return
	}

	var req request.UpdateClientPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	cp, err := h.pricingService.UpdateClientPricing(c.Request.Context(), &service.UpdateClientPricingInput{
		ID:         id,
		PriceHT:    req.PriceHT,
		PriceHTT2:  req.PriceHTT2,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client pricing updated", cp)
}

// DeleteClientPricing removes a client-specific price
func (h *PricingHandler) DeleteClientPricing(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid client pricing ID")
		return
	}

	if err := h.pricingService.DeleteClientPricing(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client pricing deleted", nil)
}

// ListClientPricingByProduct lists client prices defined for a product
func (h *PricingHandler) ListClientPricingByProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	prices, err := h.pricingService.ListClientPricingByProduct(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client pricing retrieved", prices)
}

// ListClientPricingByUser lists client prices granted to a user
func (h *PricingHandler) ListClientPricingByUser(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	prices, err := h.pricingService.ListClientPricingByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client pricing retrieved", prices)
}

// PriceHistory lists the price history of a product, newest first
func (h *PricingHandler) PriceHistory(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.pricingService.GetPriceHistory(c.Request.Context(), productID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Price history retrieved", result)
}

// BulkUpdate applies one price adjustment to many products atomically
func (h *PricingHandler) BulkUpdate(c *gin.Context) {
	var req request.BulkPriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productIDs := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid product ID: "+raw)
			return
		}
		productIDs = append(productIDs, id)
	}

	result, err := h.pricingService.BulkPriceUpdate(c.Request.Context(), &service.BulkPriceUpdateInput{
		ProductIDs: productIDs,
		Action:     enum.BulkPriceAction(req.Action),
		Value:      req.Value,
		ValueType:  enum.BulkValueType(req.ValueType),
		Reason:     req.Reason,
		ChangedBy:  *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prices updated", result)
}
