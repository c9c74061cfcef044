package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/request"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/response"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// CategoryHandler handles category and subcategory HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create handles creating a category. Recreating a soft-deleted category
// with the same name restores it.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created", category)
}

// Get handles retrieving a single category with its subcategories
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category retrieved", category)
}

// List handles listing categories
func (h *CategoryHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.categoryService.ListCategories(c.Request.Context(), &params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Categories retrieved", result)
}

// Update handles updating a category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req request.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), &service.UpdateCategoryInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
		UpdatedBy:   *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated", category)
}

// Delete soft deletes a category and cascades to its subcategories.
// Categories still referenced by active products cannot be deleted.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id, *actor); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted", nil)
}

// CreateSubCategory handles creating a subcategory
func (h *CategoryHandler) CreateSubCategory(c *gin.Context) {
	var req request.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	subCategory, err := h.categoryService.CreateSubCategory(c.Request.Context(), &service.CreateSubCategoryInput{
		CategoryID: categoryID,
		Name:       req.Name,
		CreatedBy:  *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Subcategory created", subCategory)
}

// UpdateSubCategory handles updating a subcategory
func (h *CategoryHandler) UpdateSubCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid subcategory ID")
		return
	}

	var req request.UpdateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	subCategory, err := h.categoryService.UpdateSubCategory(c.Request.Context(), &service.UpdateSubCategoryInput{
		ID:        id,
		Name:      req.Name,
		IsActive:  req.IsActive,
		UpdatedBy: *actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Subcategory updated", subCategory)
}

// DeleteSubCategory soft deletes a subcategory
func (h *CategoryHandler) DeleteSubCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid subcategory ID")
		return
	}

	actor := GetUserID(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.categoryService.DeleteSubCategory(c.Request.Context(), id, *actor); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Subcategory deleted", nil)
}
