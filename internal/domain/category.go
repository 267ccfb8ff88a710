package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named grouping products can belong to.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
