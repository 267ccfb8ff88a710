package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/SftwreDev/talipapaup-backend/internal/domain"
)

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// List returns all products, newest first.
	List(ctx context.Context) ([]domain.Product, error)

	// Update modifies an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its identifier.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a product with the given identifier exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category into the store.
	Create(ctx context.Context, category *domain.Category) error

	// List returns all categories, newest first.
	List(ctx context.Context) ([]domain.Category, error)

	// Delete removes a category from the store by its identifier.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartRepository defines the interface for cart line persistence operations.
type CartRepository interface {
	// Upsert inserts a cart line or, if one already exists for the same
	// (user, product) pair, adds the quantity to the existing line. The line
	// is updated in place with the stored row. Returns true when a new line
	// was created, false when an existing line was merged into.
	Upsert(ctx context.Context, line *domain.CartLine) (bool, error)

	// FindByUserAndProduct retrieves the cart line for the given pair.
	FindByUserAndProduct(ctx context.Context, userID string, productID uuid.UUID) (*domain.CartLine, error)

	// UpdateQuantity overwrites the quantity on an existing cart line and
	// returns the updated line.
	UpdateQuantity(ctx context.Context, userID string, productID uuid.UUID, qty int) (*domain.CartLine, error)

	// AggregateForUser returns the user's cart grouped by product, joined
	// with product details, ordered by product ID. Returns an empty slice
	// when the user has no cart lines.
	AggregateForUser(ctx context.Context, userID string) ([]domain.CartView, error)

	// Delete removes the cart line for the given pair.
	Delete(ctx context.Context, userID string, productID uuid.UUID) error

	// DeleteAllForUser removes every cart line belonging to the user and
	// returns the number of lines removed.
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
}
