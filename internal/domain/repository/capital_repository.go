package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
)

// CapitalRepository puerto de persistencia para CapitalTransaction.
// Los movimientos de capital no se editan ni borran.
type CapitalRepository interface {
	Create(ctx context.Context, tx *entity.CapitalTransaction) error
	List(ctx context.Context) ([]*entity.CapitalTransaction, error)
}
