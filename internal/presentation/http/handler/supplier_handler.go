package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/request"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/response"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// SupplierHandler handles supplier, purchase order and evaluation HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create handles creating a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req request.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), &service.CreateSupplierInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		SIRET:       req.SIRET,
		ContactName: req.ContactName,
		CreatedBy:   *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created", supplier)
}

// Get handles retrieving a single supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier retrieved", supplier)
}

// List handles listing suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.supplierService.ListSuppliers(c.Request.Context(), &service.ListSuppliersInput{
		Pagination: &params,
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active_only") == "true",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Suppliers retrieved", result)
}

// Update handles updating a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req request.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), &service.UpdateSupplierInput{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		SIRET:       req.SIRET,
		ContactName: req.ContactName,
		IsActive:    req.IsActive,
		UpdatedBy:   *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier updated", supplier)
}

// Delete soft deletes a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), id, *actor); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier deleted", nil)
}

// AddProduct links a product to the supplier catalog with its purchase price
func (h *SupplierHandler) AddProduct(c *gin.Context) {
	supplierID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req request.AddSupplierProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	sp, err := h.supplierService.AddSupplierProduct(c.Request.Context(), &service.AddSupplierProductInput{
		SupplierID:      supplierID,
		ProductID:       productID,
		SupplierRef:     req.SupplierRef,
		PurchasePriceHT: req.PurchasePriceHT,
		CreatedBy:       *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier product added", sp)
}

// RemoveProduct unlinks a product from the supplier catalog
func (h *SupplierHandler) RemoveProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "productId")
	if !ok {
		response.BadRequest(c, "Invalid supplier product ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.supplierService.RemoveSupplierProduct(c.Request.Context(), id, *actor); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier product removed", nil)
}

// ListProducts lists the supplier's catalog
func (h *SupplierHandler) ListProducts(c *gin.Context) {
	supplierID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	products, err := h.supplierService.ListSupplierProducts(c.Request.Context(), supplierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier products retrieved", products)
}

// CreateOrder creates a draft purchase order for a supplier
func (h *SupplierHandler) CreateOrder(c *gin.Context) {
	supplierID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req request.CreateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	items := make([]service.SupplierOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID: "+item.ProductID)
			return
		}
		items = append(items, service.SupplierOrderItemInput{
			ProductID:   productID,
			Quantity:    item.Quantity,
			UnitPriceHT: item.UnitPriceHT,
		})
	}

	order, err := h.supplierService.CreateSupplierOrder(c.Request.Context(), &service.CreateSupplierOrderInput{
		SupplierID:   supplierID,
		ExpectedDate: req.ExpectedDate,
		Items:        items,
		CreatedBy:    *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created", order)
}

// GetOrder handles retrieving a single purchase order
func (h *SupplierHandler) GetOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "orderId")
	if !ok {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.supplierService.GetSupplierOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved", order)
}

// ListOrders lists purchase orders of a supplier
func (h *SupplierHandler) ListOrders(c *gin.Context) {
	supplierID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.supplierService.ListSupplierOrders(c.Request.Context(), supplierID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Purchase orders retrieved", result)
}

// MarkOrdered confirms a draft purchase order was sent to the supplier
func (h *SupplierHandler) MarkOrdered(c *gin.Context) {
	id, ok := parseUUIDParam(c, "orderId")
	if !ok {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	order, err := h.supplierService.MarkSupplierOrderOrdered(c.Request.Context(), id, *actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order marked as ordered", order)
}

// ReceiveOrder receives a purchase order and restocks its lines
func (h *SupplierHandler) ReceiveOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "orderId")
	if !ok {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	order, err := h.supplierService.ReceiveSupplierOrder(c.Request.Context(), id, *actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order received", order)
}

// CancelOrder cancels a purchase order that has not been received
func (h *SupplierHandler) CancelOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "orderId")
	if !ok {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	order, err := h.supplierService.CancelSupplierOrder(c.Request.Context(), id, *actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order cancelled", order)
}

// Evaluate records a rating for a supplier and refreshes its average
func (h *SupplierHandler) Evaluate(c *gin.Context) {
	supplierID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req request.EvaluateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	evaluation, err := h.supplierService.EvaluateSupplier(c.Request.Context(), &service.EvaluateSupplierInput{
		SupplierID: supplierID,
		UserID:     *actor,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier evaluated", evaluation)
}

// ListEvaluations lists the evaluations of a supplier
func (h *SupplierHandler) ListEvaluations(c *gin.Context) {
	supplierID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	evaluations, err := h.supplierService.ListSupplierEvaluations(c.Request.Context(), supplierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier evaluations retrieved", evaluations)
}
