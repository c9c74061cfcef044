package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/request"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/response"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// maxPhotoSize caps return photo uploads at 5MB
const maxPhotoSize = 5 << 20

// ReturnHandler handles merchandise return HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
	uploadDir     string
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService, uploadDir string) *ReturnHandler {
	return &ReturnHandler{returnService: returnService, uploadDir: uploadDir}
}

// Create registers a return against a delivered order
func (h *ReturnHandler) Create(c *gin.Context) {
	var req request.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
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

	items := make([]service.ReturnItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID: "+item.ProductID)
			return
		}
		items = append(items, service.ReturnItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			Reason:    item.Reason,
		})
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), &service.CreateReturnInput{
		OrderID:   orderID,
		ShopID:    shopID,
		Items:     items,
		CreatedBy: *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Return created", ret)
}

// UploadPhoto attaches photo evidence to a pending return. Only images up
// to 5MB are accepted.
func (h *ReturnHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "A photo file is required")
		return
	}
	if file.Size > maxPhotoSize {
		response.BadRequest(c, "Photo exceeds the 5MB limit")
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		response.BadRequest(c, "Only image files are accepted")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		response.Error(c, err)
		return
	}
	name := fmt.Sprintf("return-%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename)))
	dest := filepath.Join(h.uploadDir, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		response.Error(c, err)
		return
	}

	ret, err := h.returnService.AttachPhoto(c.Request.Context(), id, dest, *actor)
	if err != nil {
		// Do not leave orphan files behind when the return rejects the photo
		_ = os.Remove(dest)
		response.Error(c, err)
		return
	}

	response.OK(c, "Photo attached", ret)
}

// Get handles retrieving a single return
func (h *ReturnHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return retrieved", ret)
}

// List handles listing returns with filters
func (h *ReturnHandler) List(c *gin.Context) {
	var filter request.ReturnFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListReturnsInput{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	if filter.Status != "" {
		status, ok := enum.ParseReturnStatus(filter.Status)
		if !ok {
			response.BadRequest(c, "Invalid return status")
			return
		}
		input.Status = &status
	}
	if filter.ShopID != "" {
		if id, err := uuid.Parse(filter.ShopID); err == nil {
			input.ShopID = &id
		}
	}

	result, err := h.returnService.ListReturns(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Returns retrieved", result)
}

// Approve adjudicates a pending return, optionally issuing a credit note
// and restocking the returned goods
func (h *ReturnHandler) Approve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	var req request.ApproveReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ret, err := h.returnService.ApproveReturn(c.Request.Context(), &service.ApproveReturnInput{
		ID:              id,
		DecidedBy:       *actor,
		DecisionNote:    req.DecisionNote,
		IssueCreditNote: req.IssueCreditNote,
		Restock:         req.Restock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return approved", ret)
}

// Reject rejects a pending return
func (h *ReturnHandler) Reject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	var req request.RejectReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ret, err := h.returnService.RejectReturn(c.Request.Context(), &service.RejectReturnInput{
		ID:           id,
		DecidedBy:    *actor,
		DecisionNote: req.DecisionNote,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return rejected", ret)
}

// Stats aggregates return counts, reasons and credited amounts over a
// trailing window (default 30 days)
func (h *ReturnHandler) Stats(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, "Invalid days parameter")
			return
		}
		days = parsed
	}

	stats, err := h.returnService.ReturnStats(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return statistics retrieved", stats)
}
