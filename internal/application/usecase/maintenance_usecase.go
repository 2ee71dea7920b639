package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-local/pkg/atomicfile"
)

// MaintenanceUseCase operaciones de mantenimiento del store: respaldo del
// documento lógico completo y flush explícito.
type MaintenanceUseCase struct {
	store     repository.Store
	backupDir string
}

// NewMaintenanceUseCase construye el caso de uso.
func NewMaintenanceUseCase(store repository.Store, backupDir string) *MaintenanceUseCase {
	return &MaintenanceUseCase{store: store, backupDir: backupDir}
}

// CreateBackup serializa el documento lógico completo y lo escribe de forma
// atómica en el directorio de respaldos. El mismo esquema sirve para ambos
// backends, así un respaldo tomado con uno puede inspeccionarse con el otro.
func (uc *MaintenanceUseCase) CreateBackup(ctx context.Context) (*dto.BackupResponse, error) {
	data, err := uc.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("serializar snapshot: %w", err)
	}
	name := fmt.Sprintf("backup-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(uc.backupDir, name)
	if err := atomicfile.Write(path, data); err != nil {
		return nil, fmt.Errorf("escribir respaldo: %w", err)
	}
	return &dto.BackupResponse{Path: path}, nil
}

// Save fuerza la escritura durable inmediata del estado actual.
func (uc *MaintenanceUseCase) Save(ctx context.Context) error {
	return uc.store.Flush(ctx)
}
