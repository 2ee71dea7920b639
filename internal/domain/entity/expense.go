package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto operativo de la tienda.
type Expense struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
