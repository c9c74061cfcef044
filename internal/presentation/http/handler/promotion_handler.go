package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/request"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/response"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// PromotionHandler handles promotion-related HTTP requests
type PromotionHandler struct {
	promotionService *service.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// Create handles creating a promotion
func (h *PromotionHandler) Create(c *gin.Context) {
	var req request.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.CreatePromotionInput{
		Code:        req.Code,
		Description: req.Description,
		Type:        enum.PromotionType(req.Type),
		Value:       req.Value,
		MinAmount:   req.MinAmount,
		MaxDiscount: req.MaxDiscount,
		ValidFrom:   req.ValidFrom,
		ValidTo:     req.ValidTo,
		UsageLimit:  req.UsageLimit,
		AppliesTo:   enum.PromotionScopeEntireOrder,
		CreatedBy:   *actor,
	}
	if req.AppliesTo != "" {
		input.AppliesTo = enum.PromotionScope(req.AppliesTo)
	}
	for _, raw := range req.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid product ID: "+raw)
			return
		}
		input.ProductIDs = append(input.ProductIDs, id)
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &id
	}

	promotion, err := h.promotionService.CreatePromotion(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Promotion created", promotion)
}

// Get handles retrieving a single promotion
func (h *PromotionHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	promotion, err := h.promotionService.GetPromotion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion retrieved", promotion)
}

// List handles listing promotions
func (h *PromotionHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.promotionService.ListPromotions(c.Request.Context(), &service.ListPromotionsInput{
		Pagination: &params,
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active_only") == "true",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Promotions retrieved", result)
}

// Update handles updating a promotion
func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	var req request.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	promotion, err := h.promotionService.UpdatePromotion(c.Request.Context(), &service.UpdatePromotionInput{
		ID:          id,
		Description: req.Description,
		Value:       req.Value,
		MinAmount:   req.MinAmount,
		MaxDiscount: req.MaxDiscount,
		ValidFrom:   req.ValidFrom,
		ValidTo:     req.ValidTo,
		UsageLimit:  req.UsageLimit,
		IsActive:    req.IsActive,
		UpdatedBy:   *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion updated", promotion)
}

// Delete soft deletes a promotion
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.promotionService.DeletePromotion(c.Request.Context(), id, *actor); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion deleted", nil)
}

// Validate checks a promotion code against an order amount without
// consuming usage
func (h *PromotionHandler) Validate(c *gin.Context) {
	var req request.ValidatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.promotionService.Validate(c.Request.Context(), req.Code, req.OrderAmount, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion valid", result)
}
