package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SftwreDev/talipapaup-backend/internal/domain"
	"github.com/SftwreDev/talipapaup-backend/pkg/database"
	apperrors "github.com/SftwreDev/talipapaup-backend/pkg/errors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string { return &s }

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// ─── Cart column definitions ────────────────────────────────────────────────

var cartColumns = []string{
	"id", "user_id", "product_id", "total_qty", "created_at", "updated_at",
}

var cartUpsertColumns = []string{
	"id", "user_id", "product_id", "total_qty", "created_at", "updated_at", "inserted",
}

var cartViewColumns = []string{
	"id", "product_id", "product_name", "description", "product_price",
	"total_qty", "sub_total_price", "img_url", "created_at", "updated_at",
}

func sampleCartLine() domain.CartLine {
	return domain.CartLine{
		ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		UserID:    "user-1",
		ProductID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		TotalQty:  2,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func cartLineRow(l domain.CartLine) []any {
	return []any{l.ID, l.UserID, l.ProductID, l.TotalQty, l.CreatedAt, l.UpdatedAt}
}

// ─────────────────────────────────────────────────────────────────────────────
// CartRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestCartRepository_Upsert_NewLine(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	line := sampleCartLine()

	mock.ExpectQuery("INSERT INTO carts").
		WithArgs(line.ID, line.UserID, line.ProductID, line.TotalQty, line.CreatedAt).
		WillReturnRows(
			pgxmock.NewRows(cartUpsertColumns).
				AddRow(line.ID, line.UserID, line.ProductID, line.TotalQty, line.CreatedAt, line.CreatedAt, true),
		)

	created, err := repo.Upsert(context.Background(), &line)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, line.TotalQty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_Upsert_MergesQuantity(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	line := sampleCartLine()
	line.TotalQty = 3

	// The existing line already held 2, so the database returns 5 and the
	// original line's identity and created_at.
	existingID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	earlier := now.Add(-time.Hour)

	mock.ExpectQuery("INSERT INTO carts").
		WithArgs(line.ID, line.UserID, line.ProductID, 3, line.CreatedAt).
		WillReturnRows(
			pgxmock.NewRows(cartUpsertColumns).
				AddRow(existingID, line.UserID, line.ProductID, 5, earlier, now, false),
		)

	created, err := repo.Upsert(context.Background(), &line)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existingID, line.ID)
	assert.Equal(t, 5, line.TotalQty)
	assert.Equal(t, earlier, line.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_FindByUserAndProduct_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	l := sampleCartLine()
	mock.ExpectQuery("SELECT .+ FROM carts WHERE user_id").
		WithArgs(l.UserID, l.ProductID).
		WillReturnRows(
			pgxmock.NewRows(cartColumns).AddRow(cartLineRow(l)...),
		)

	result, err := repo.FindByUserAndProduct(context.Background(), l.UserID, l.ProductID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, result.ID)
	assert.Equal(t, l.TotalQty, result.TotalQty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_FindByUserAndProduct_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	l := sampleCartLine()
	mock.ExpectQuery("SELECT .+ FROM carts WHERE user_id").
		WithArgs("missing-user", l.ProductID).
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.FindByUserAndProduct(context.Background(), "missing-user", l.ProductID)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_UpdateQuantity_Overwrites(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	l := sampleCartLine()
	l.TotalQty = 7

	mock.ExpectQuery("UPDATE carts").
		WithArgs(l.UserID, l.ProductID, 7, pgxmock.AnyArg()).
		WillReturnRows(
			pgxmock.NewRows(cartColumns).AddRow(cartLineRow(l)...),
		)

	result, err := repo.UpdateQuantity(context.Background(), l.UserID, l.ProductID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, result.TotalQty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_UpdateQuantity_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	l := sampleCartLine()
	mock.ExpectQuery("UPDATE carts").
		WithArgs(l.UserID, l.ProductID, 7, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.UpdateQuantity(context.Background(), l.UserID, l.ProductID, 7)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_AggregateForUser_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	lineID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	productID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	price := decimal.RequireFromString("9.99")
	subTotal := decimal.RequireFromString("19.98")

	mock.ExpectQuery("SELECT .+ FROM carts c").
		WithArgs("user-1").
		WillReturnRows(
			pgxmock.NewRows(cartViewColumns).
				AddRow(lineID, productID, "Bangus", "Fresh milkfish", price, 2, subTotal,
					strPtr("https://cdn.example.com/bangus.jpg"), now, now),
		)

	views, err := repo.AggregateForUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, lineID, views[0].ID)
	assert.Equal(t, "Bangus", views[0].ProductName)
	assert.Equal(t, 2, views[0].TotalQty)
	assert.True(t, views[0].SubTotal.Equal(subTotal))
	assert.True(t, views[0].LineTotal().Equal(subTotal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_AggregateForUser_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM carts c").
		WithArgs("empty-user").
		WillReturnRows(pgxmock.NewRows(cartViewColumns))

	views, err := repo.AggregateForUser(context.Background(), "empty-user")
	require.NoError(t, err)
	assert.Equal(t, []domain.CartView{}, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_Delete_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	l := sampleCartLine()
	mock.ExpectExec("DELETE FROM carts WHERE user_id").
		WithArgs(l.UserID, l.ProductID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), l.UserID, l.ProductID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	l := sampleCartLine()
	mock.ExpectExec("DELETE FROM carts WHERE user_id").
		WithArgs(l.UserID, l.ProductID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), l.UserID, l.ProductID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_DeleteAllForUser_ReturnsCount(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	mock.ExpectExec("DELETE FROM carts WHERE user_id").
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	removed, err := repo.DeleteAllForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_DeleteAllForUser_EmptyCart(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCartRepository(mock)

	mock.ExpectExec("DELETE FROM carts WHERE user_id").
		WithArgs("empty-user").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := repo.DeleteAllForUser(context.Background(), "empty-user")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
