package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/SftwreDev/talipapaup-backend/internal/domain"
	"github.com/SftwreDev/talipapaup-backend/internal/repository"
	apperrors "github.com/SftwreDev/talipapaup-backend/pkg/errors"
	"github.com/SftwreDev/talipapaup-backend/pkg/httputil"
	"github.com/SftwreDev/talipapaup-backend/pkg/validator"
)

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

// NewCategoryHandler creates a new category HTTP handler.
func NewCategoryHandler(repo repository.CategoryRepository, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		repo:   repo,
		logger: logger,
	}
}

// CreateCategoryRequest is the JSON request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// ListCategories handles GET /api/v1/category
// @Summary List categories
// @Description Returns all categories, newest first
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/category [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if len(categories) == 0 {
		httputil.WriteError(w, r, apperrors.NotFoundMsg("No categories found"), h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Categories fetched successfully.", categories)
}

// CreateCategory handles POST /api/v1/category
// Category names are stored lowercase and trimmed so the unique index catches
// case and whitespace variants.
// @Summary Create a category
// @Description Creates a new product category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category to create"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/category [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Detail: "invalid request body: " + err.Error(),
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Detail: "category name is required",
		})
		return
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(r.Context(), category); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "category created",
		slog.String("category_id", category.ID.String()),
		slog.String("name", category.Name),
	)

	httputil.WriteSuccess(w, http.StatusCreated, "Category created successfully.", category)
}

// DeleteCategory handles DELETE /api/v1/category/{id}
// @Summary Delete a category
// @Description Deletes a category by UUID
// @Tags categories
// @Produce json
// @Param id path string true "Category UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/category/{id} [delete]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "category deleted",
		slog.String("category_id", id.String()),
	)

	httputil.WriteSuccess(w, http.StatusOK, "Category deleted successfully.", map[string]string{"id": id.String()})
}
