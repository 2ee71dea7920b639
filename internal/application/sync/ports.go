package sync

import (
	"context"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
)

// Mirror puerto hacia el espejo remoto de cambios. El espejo es best-effort:
// la verdad local nunca depende de que el push llegue, y el protocolo de
// replay es last-write-wins por entidad (cada entrada carga el snapshot
// completo, así que reenviar una entrada ya aplicada es inocuo).
type Mirror interface {
	PushChange(ctx context.Context, change *entity.PendingChange) error
}
