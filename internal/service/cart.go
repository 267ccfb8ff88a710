package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SftwreDev/talipapaup-backend/internal/domain"
	"github.com/SftwreDev/talipapaup-backend/internal/event"
	"github.com/SftwreDev/talipapaup-backend/internal/repository"
	apperrors "github.com/SftwreDev/talipapaup-backend/pkg/errors"
)

// Cart line actions reported on cart.updated events.
const (
	cartActionAdded       = "added"
	cartActionMerged      = "merged"
	cartActionOverwritten = "overwritten"
	cartActionRemoved     = "removed"
)

// CartService implements the business logic for shopping cart operations.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// AddToCartInput holds the parameters for adding a product to a cart.
type AddToCartInput struct {
	UserID    string
	ProductID uuid.UUID
	TotalQty  int
}

// AddToCart adds a product to the user's cart. If a line for the same product
// already exists, the quantity is added onto it. Returns the stored line and
// whether a new line was created.
func (s *CartService) AddToCart(ctx context.Context, input *AddToCartInput) (*domain.CartLine, bool, error) {
	if input.UserID == "" {
		return nil, false, apperrors.InvalidInput("user id is required")
	}
	if input.TotalQty <= 0 {
		return nil, false, apperrors.InvalidInput("quantity must be greater than zero")
	}

	exists, err := s.products.Exists(ctx, input.ProductID)
	if err != nil {
		return nil, false, fmt.Errorf("check product exists: %w", err)
	}
	if !exists {
		return nil, false, apperrors.NotFound("product", input.ProductID.String())
	}

	now := time.Now().UTC()
	line := &domain.CartLine{
		ID:        uuid.New(),
		UserID:    input.UserID,
		ProductID: input.ProductID,
		TotalQty:  input.TotalQty,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.carts.Upsert(ctx, line)
	if err != nil {
		return nil, false, fmt.Errorf("add to cart: %w", err)
	}

	action := cartActionMerged
	if created {
		action = cartActionAdded
	}

	if err := s.producer.PublishCartUpdated(ctx, line, action); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", line.UserID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product added to cart",
		slog.String("user_id", line.UserID),
		slog.String("product_id", line.ProductID.String()),
		slog.Int("total_qty", line.TotalQty),
		slog.String("action", action),
	)

	return line, created, nil
}

// UpdateQuantity overwrites the quantity on an existing cart line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID uuid.UUID, qty int) (*domain.CartLine, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if qty <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than zero")
	}

	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("check product exists: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("product", productID.String())
	}

	line, err := s.carts.UpdateQuantity(ctx, userID, productID, qty)
	if err != nil {
		return nil, fmt.Errorf("update cart quantity: %w", err)
	}

	if err := s.producer.PublishCartUpdated(ctx, line, cartActionOverwritten); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("user_id", userID),
		slog.String("product_id", productID.String()),
		slog.Int("total_qty", line.TotalQty),
	)

	return line, nil
}

// GetCart returns the user's cart aggregated by product and joined with
// product details. An empty cart is reported as not found.
func (s *CartService) GetCart(ctx context.Context, userID string) ([]domain.CartView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	views, err := s.carts.AggregateForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if len(views) == 0 {
		return nil, apperrors.NotFoundMsg("No carts found for this user.")
	}

	return views, nil
}

// RemoveItem removes a single product line from the user's cart. The product
// is checked first so a missing product is reported as such, not as a missing
// cart line.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return fmt.Errorf("check product exists: %w", err)
	}
	if !exists {
		return apperrors.NotFound("product", productID.String())
	}

	if err := s.carts.Delete(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	line := &domain.CartLine{UserID: userID, ProductID: productID}
	if err := s.producer.PublishCartUpdated(ctx, line, cartActionRemoved); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart item removed",
		slog.String("user_id", userID),
		slog.String("product_id", productID.String()),
	)

	return nil
}

// ClearCart removes every line from the user's cart and returns the number of
// lines removed. An already empty cart is reported as not found.
func (s *CartService) ClearCart(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, apperrors.InvalidInput("user id is required")
	}

	removed, err := s.carts.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}

	if removed == 0 {
		return 0, apperrors.NotFoundMsg("No carts found for this user.")
	}

	if err := s.producer.PublishCartCleared(ctx, userID, removed); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("user_id", userID),
		slog.Int64("lines_removed", removed),
	)

	return removed, nil
}
