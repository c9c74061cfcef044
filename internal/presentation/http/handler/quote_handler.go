package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/request"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/response"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func quoteItemInputs(c *gin.Context, items []request.QuoteItemRequest) ([]service.QuoteItemInput, bool) {
	inputs := make([]service.QuoteItemInput, 0, len(items))
	for _, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID: "+item.ProductID)
			return nil, false
		}
		inputs = append(inputs, service.QuoteItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}
	return inputs, true
}

// Create handles creating a draft quote with snapshotted prices
func (h *QuoteHandler) Create(c *gin.Context) {
	var req request.CreateQuoteRequest
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

	items, ok := quoteItemInputs(c, req.Items)
	if !ok {
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &service.CreateQuoteInput{
		ShopID:     shopID,
		CreatedBy:  *actor,
		ValidUntil: req.ValidUntil,
		Tier:       parseTariffTier(req.Tier),
		Notes:      req.Notes,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created", quote)
}

// Get handles retrieving a single quote with its items
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved", quote)
}

// List handles listing quotes with filters
func (h *QuoteHandler) List(c *gin.Context) {
	var filter request.QuoteFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListQuotesInput{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	if filter.Status != "" {
		status, ok := enum.ParseQuoteStatus(filter.Status)
		if !ok {
			response.BadRequest(c, "Invalid quote status")
			return
		}
		input.Status = &status
	}
	if filter.ShopID != "" {
		if id, err := uuid.Parse(filter.ShopID); err == nil {
			input.ShopID = &id
		}
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Quotes retrieved", result)
}

// Update replaces the content of a draft or sent quote
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	items, ok := quoteItemInputs(c, req.Items)
	if !ok {
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), &service.UpdateQuoteInput{
		ID:         id,
		ValidUntil: req.ValidUntil,
		Tier:       parseTariffTier(req.Tier),
		Notes:      req.Notes,
		Items:      items,
		UpdatedBy:  *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated", quote)
}

// Send emails the quote to the client and marks it SENT
func (h *QuoteHandler) Send(c *gin.Context) {
	h.transition(c, h.quoteService.SendQuote, "Quote sent")
}

// Accept marks a sent quote as accepted
func (h *QuoteHandler) Accept(c *gin.Context) {
	h.transition(c, h.quoteService.AcceptQuote, "Quote accepted")
}

// Reject marks a sent quote as rejected
func (h *QuoteHandler) Reject(c *gin.Context) {
	h.transition(c, h.quoteService.RejectQuote, "Quote rejected")
}

// Expire marks a sent quote as expired
func (h *QuoteHandler) Expire(c *gin.Context) {
	h.transition(c, h.quoteService.ExpireQuote, "Quote expired")
}

// Convert turns an accepted quote into an order
func (h *QuoteHandler) Convert(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	order, err := h.quoteService.ConvertQuote(c.Request.Context(), id, *actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote converted", order)
}

// Delete soft deletes a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id, *actor); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote deleted", nil)
}

type quoteTransition func(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Quote, error)

func (h *QuoteHandler) transition(c *gin.Context, fn quoteTransition, message string) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	quote, err := fn(c.Request.Context(), id, *actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, quote)
}
