package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalTransaction movimiento de capital: Amount positivo = inyección,
// negativo = retiro. Permite calcular capital disponible independiente del
// valor del inventario.
type CapitalTransaction struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	CreatedAt time.Time       `json:"created_at"`
}
