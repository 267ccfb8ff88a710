package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SftwreDev/talipapaup-backend/internal/domain"
	"github.com/SftwreDev/talipapaup-backend/pkg/database"
	apperrors "github.com/SftwreDev/talipapaup-backend/pkg/errors"
)

// CartRepository implements repository.CartRepository using PostgreSQL.
type CartRepository struct {
	db database.DBTX
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(db database.DBTX) *CartRepository {
	return &CartRepository{db: db}
}

// Upsert inserts a cart line, or adds the quantity onto the existing line for
// the same (user, product) pair. The UNIQUE(user_id, product_id) constraint
// makes the merge atomic, so concurrent adds cannot create duplicate lines.
// (xmax = 0) distinguishes a fresh insert from a conflict update.
func (r *CartRepository) Upsert(ctx context.Context, line *domain.CartLine) (bool, error) {
	query := `
		INSERT INTO carts (id, user_id, product_id, total_qty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET total_qty = carts.total_qty + EXCLUDED.total_qty,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, product_id, total_qty, created_at, updated_at, (xmax = 0) AS inserted`

	var inserted bool
	err := r.db.QueryRow(ctx, query,
		line.ID,
		line.UserID,
		line.ProductID,
		line.TotalQty,
		line.CreatedAt,
	).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.TotalQty,
		&line.CreatedAt,
		&line.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return false, fmt.Errorf("upsert cart line: %w", err)
	}

	return inserted, nil
}

// FindByUserAndProduct retrieves the cart line for the given (user, product) pair.
func (r *CartRepository) FindByUserAndProduct(ctx context.Context, userID string, productID uuid.UUID) (*domain.CartLine, error) {
	query := `
		SELECT id, user_id, product_id, total_qty, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND product_id = $2`

	var line domain.CartLine
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.TotalQty,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("cart line", userID+"/"+productID.String())
		}
		return nil, fmt.Errorf("scan cart line: %w", err)
	}

	return &line, nil
}

// UpdateQuantity overwrites the quantity on an existing cart line.
func (r *CartRepository) UpdateQuantity(ctx context.Context, userID string, productID uuid.UUID, qty int) (*domain.CartLine, error) {
	query := `
		UPDATE carts
		SET total_qty = $3, updated_at = $4
		WHERE user_id = $1 AND product_id = $2
		RETURNING id, user_id, product_id, total_qty, created_at, updated_at`

	var line domain.CartLine
	err := r.db.QueryRow(ctx, query, userID, productID, qty, time.Now().UTC()).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.TotalQty,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("cart line", userID+"/"+productID.String())
		}
		return nil, fmt.Errorf("update cart quantity: %w", err)
	}

	return &line, nil
}

// AggregateForUser groups the user's cart lines by product and joins product
// details. The surviving line ID is the one created first, quantities are
// summed, and the subtotal is computed in SQL to keep NUMERIC precision.
func (r *CartRepository) AggregateForUser(ctx context.Context, userID string) ([]domain.CartView, error) {
	query := `
		SELECT
			(array_agg(c.id ORDER BY c.created_at))[1] AS id,
			c.product_id,
			p.product_name,
			p.description,
			p.price AS product_price,
			SUM(c.total_qty)::INT AS total_qty,
			(SUM(c.total_qty) * p.price)::NUMERIC AS sub_total_price,
			p.img_url,
			MIN(c.created_at) AS created_at,
			MAX(c.updated_at) AS updated_at
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		GROUP BY c.product_id, p.product_name, p.description, p.price, p.img_url
		ORDER BY c.product_id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate cart: %w", err)
	}
	defer rows.Close()

	var views []domain.CartView
	for rows.Next() {
		var v domain.CartView
		if err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&v.ProductName,
			&v.Description,
			&v.Price,
			&v.TotalQty,
			&v.SubTotal,
			&v.ImgURL,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart view row: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart view rows: %w", err)
	}

	if views == nil {
		views = []domain.CartView{}
	}

	return views, nil
}

// Delete removes the cart line for the given (user, product) pair.
func (r *CartRepository) Delete(ctx context.Context, userID string, productID uuid.UUID) error {
	query := `DELETE FROM carts WHERE user_id = $1 AND product_id = $2`

	ct, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("cart line", userID+"/"+productID.String())
	}

	return nil
}

// DeleteAllForUser removes every cart line belonging to the user.
func (r *CartRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	query := `DELETE FROM carts WHERE user_id = $1`

	ct, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}

	return ct.RowsAffected(), nil
}
