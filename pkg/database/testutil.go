package database

import (
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

// NewMockPool creates a pgxmock pool for repository tests. The returned
// pool satisfies DBTX, so it drops into the product, category, and cart
// repository constructors in place of a real pgxpool. Tests should call
// ExpectationsWereMet() before finishing.
func NewMockPool() (pgxmock.PgxPoolIface, error) {
	return pgxmock.NewPool()
}
