package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a stored cart row: one (user, product) pair with its
// accumulated quantity. Rows for the same pair are merged on write.
type CartLine struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	TotalQty  int       `json:"total_qty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartView is one aggregated cart entry joined with its product details.
// Quantities for the same product are summed, CreatedAt carries the earliest
// line timestamp and UpdatedAt the latest.
type CartView struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"product_price"`
	TotalQty    int             `json:"total_qty"`
	SubTotal    decimal.Decimal `json:"sub_total_price"`
	ImgURL      *string         `json:"img_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LineTotal computes unit price times quantity for the entry.
func (v *CartView) LineTotal() decimal.Decimal {
	return v.Price.Mul(decimal.NewFromInt(int64(v.TotalQty)))
}

// CartTotal sums the subtotals of all entries in the view.
func CartTotal(views []CartView) decimal.Decimal {
	total := decimal.Zero
	for i := range views {
		total = total.Add(views[i].SubTotal)
	}
	return total
}
