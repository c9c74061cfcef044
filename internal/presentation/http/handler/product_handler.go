package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/request"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/response"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceHT:     req.PriceHT,
		PriceHTT2:   req.PriceHTT2,
		TVARate:     req.TVARate,
		Stock:       req.Stock,
		StockAlert:  req.StockAlert,
		Unit:        req.Unit,
		Origin:      req.Origin,
		CreatedBy:   *actor,
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &id
	}
	if req.SubCategoryID != nil {
		id, err := uuid.Parse(*req.SubCategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid subcategory ID")
			return
		}
		input.SubCategoryID = &id
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created", product)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// List handles listing products with filters
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListProductsInput{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		LowStock:   filter.LowStock,
		ActiveOnly: filter.ActiveOnly,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	if filter.CategoryID != "" {
		if id, err := uuid.Parse(filter.CategoryID); err == nil {
			input.CategoryID = &id
		}
	}
	if filter.SubCategoryID != "" {
		if id, err := uuid.Parse(filter.SubCategoryID); err == nil {
			input.SubCategoryID = &id
		}
	}

	result, err := h.productService.ListProducts(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Products retrieved", result)
}

// Update handles updating a product. A base price change appends a
// manual price history entry.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.UpdateProductInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PriceHT:     req.PriceHT,
		PriceHTT2:   req.PriceHTT2,
		TVARate:     req.TVARate,
		Stock:       req.Stock,
		StockAlert:  req.StockAlert,
		Unit:        req.Unit,
		Origin:      req.Origin,
		IsActive:    req.IsActive,
		PriceReason: req.PriceReason,
		UpdatedBy:   *actor,
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &catID
	}
	if req.SubCategoryID != nil {
		subID, err := uuid.Parse(*req.SubCategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid subcategory ID")
			return
		}
		input.SubCategoryID = &subID
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated", product)
}

// Delete soft deletes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id, *actor); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted", nil)
}

// AdjustStock applies a signed stock delta to a product
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, req.Delta, *actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted", product)
}

// LowStock lists products at or below their stock alert threshold
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved", products)
}
