package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
)

// PendingChangeRepository puerto del ledger de cambios pendientes.
//
// El ledger es append-only: las entradas nunca se mutan salvo para estampar
// SyncedAt, y las marcadas como sincronizadas se retienen para auditoría
// (la compactación es una política aparte). Los backends además escriben una
// entrada por cada mutación de entidad en la misma unidad durable que la
// mutación, de modo que "la mutación ocurrió" y "la entrada existe" siempre
// son consistentes entre sí.
type PendingChangeRepository interface {
	Append(ctx context.Context, change *entity.PendingChange) error
	// Pending devuelve las entradas con SyncedAt nulo, ordenadas por
	// CreatedAt ascendente (y por ID como desempate): el replay más antiguo
	// primero es lo que hace funcionar last-write-wins aguas abajo.
	Pending(ctx context.Context) ([]*entity.PendingChange, error)
	MarkSynced(ctx context.Context, ids []int64) error
	// Clear marca todas las entradas pendientes como sincronizadas.
	Clear(ctx context.Context) error
}
