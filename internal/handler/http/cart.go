package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/SftwreDev/talipapaup-backend/internal/service"
	"github.com/SftwreDev/talipapaup-backend/pkg/httputil"
	"github.com/SftwreDev/talipapaup-backend/pkg/validator"
)

// CartHandler handles HTTP requests for shopping cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddToCartRequest is the JSON request body for adding a product to a cart.
type AddToCartRequest struct {
	UserID    string `json:"user_id" validate:"required,min=1,max=255"`
	ProductID string `json:"product_id" validate:"required,uuid"`
	TotalQty  int    `json:"total_qty" validate:"required,gt=0"`
}

// AddToCart handles POST /api/v1/carts
// Responds 201 when a new cart line was created, 200 when the quantity was
// merged onto an existing line.
// @Summary Add a product to the cart
// @Description Adds a product to the user's cart, merging quantities for duplicates
// @Tags carts
// @Accept json
// @Produce json
// @Param request body AddToCartRequest true "Cart line to add"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/carts [post]
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AddToCartRequest
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

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Detail: "invalid UUID: " + req.ProductID,
		})
		return
	}

	input := &service.AddToCartInput{
		UserID:    req.UserID,
		ProductID: productID,
		TotalQty:  req.TotalQty,
	}

	line, created, err := h.service.AddToCart(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	httputil.WriteSuccess(w, status, "The product was successfully added to the cart.", line)
}

// GetCart handles GET /api/v1/carts/{userId}
// @Summary Get the user's cart
// @Description Returns the cart aggregated by product and joined with product details
// @Tags carts
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/carts/{userId} [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Detail: "user id is required",
		})
		return
	}

	views, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Carts fetched successfully.", views)
}

// UpdateQuantity handles PUT /api/v1/carts/qty/{userId}/{productId}/{qty}
// The new quantity replaces the stored one, it is not added onto it.
// @Summary Overwrite the quantity of a cart line
// @Tags carts
// @Produce json
// @Param userId path string true "User ID"
// @Param productId path string true "Product UUID"
// @Param qty path int true "New quantity"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/carts/qty/{userId}/{productId}/{qty} [put]
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Detail: "user id is required",
		})
		return
	}

	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	qty, err := strconv.Atoi(chi.URLParam(r, "qty"))
	if err != nil || qty <= 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Detail: "qty must be a positive integer",
		})
		return
	}

	line, err := h.service.UpdateQuantity(r.Context(), userID, productID, qty)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	msg := fmt.Sprintf("Product quantity updated in cart. Added %d items.", qty)
	httputil.WriteSuccess(w, http.StatusOK, msg, line)
}

// RemoveItem handles DELETE /api/v1/carts/{userId}/{productId}
// @Summary Remove a product from the cart
// @Tags carts
// @Produce json
// @Param userId path string true "User ID"
// @Param productId path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/carts/{userId}/{productId} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Detail: "user id is required",
		})
		return
	}

	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), userID, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "The product was removed from the cart.", map[string]string{
		"user_id":    userID,
		"product_id": productID.String(),
	})
}

// ClearCart handles DELETE /api/v1/carts/{userId}
// @Summary Remove every line from the user's cart
// @Tags carts
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/carts/{userId} [delete]
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Detail: "user id is required",
		})
		return
	}

	removed, err := h.service.ClearCart(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "All carts deleted for this user.", map[string]any{
		"user_id":       userID,
		"lines_removed": removed,
	})
}
