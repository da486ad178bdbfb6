package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/model"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/repository"
)

// CategoryHandler bundles dependencies for category endpoints.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type categoryReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// List returns every category, name-ascending. Public; served through
// the response cache when Redis is configured.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	cats, err := h.Categories.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to retrieve categories"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": cats})
}

// Create inserts a category. is_active defaults to true when omitted.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if req.Name == nil || *req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Category name is required"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	cat := &model.Category{Name: *req.Name, Description: req.Description, IsActive: active}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Categories.Create(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Category name is required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create category"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Category created successfully", "data": cat})
}

// Get returns a single category by id.
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid category id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to retrieve category"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": cat})
}

// Update applies a partial update; omitted fields keep their stored values.
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid category id"})
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cat, err := h.Categories.Update(ctx, id, repository.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFields):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "No fields to update"})
		case errors.Is(err, repository.ErrCategoryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Category not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update category"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Category updated successfully", "data": cat})
}

// Delete removes a category by id.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid category id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete category"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Category deleted successfully"})
}
