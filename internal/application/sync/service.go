package sync

import (
	"context"
	"fmt"
	gosync "sync"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-local/pkg/logger"
)

// Service drena el ledger de cambios pendientes hacia el espejo remoto.
// Un solo drenado a la vez: un Drain mientras otro corre devuelve
// domain.ErrSyncInProgress sin encolar.
type Service struct {
	ledger repository.PendingChangeRepository
	mirror Mirror
	log    *logger.Logger

	mu gosync.Mutex
}

// NewService construye el servicio de sincronización.
func NewService(ledger repository.PendingChangeRepository, mirror Mirror, log *logger.Logger) *Service {
	return &Service{ledger: ledger, mirror: mirror, log: log}
}

// DrainResult resumen de un drenado.
type DrainResult struct {
	Synced  int `json:"synced"`
	Pending int `json:"pending"`
}

// Drain empuja las entradas pendientes al espejo, más antigua primero. Cada
// entrada se marca como sincronizada solo después de que el espejo confirme
// su recepción, y el primer push fallido detiene el drenado: las entradas
// posteriores quedan para el próximo intento, preservando el orden.
func (s *Service) Drain(ctx context.Context) (*DrainResult, error) {
	if !s.mu.TryLock() {
		return nil, domain.ErrSyncInProgress
	}
	defer s.mu.Unlock()

	pending, err := s.ledger.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer pendientes: %w", err)
	}
	if len(pending) == 0 {
		return &DrainResult{}, nil
	}

	s.log.Info().Int("pendientes", len(pending)).Msg("iniciando drenado hacia el espejo")

	synced := 0
	for _, change := range pending {
		if err := ctx.Err(); err != nil {
			return &DrainResult{Synced: synced, Pending: len(pending) - synced}, err
		}
		if err := s.mirror.PushChange(ctx, change); err != nil {
			s.log.Warn().Err(err).
				Int64("change_id", change.ID).
				Str("entity_type", change.EntityType).
				Msg("push al espejo falló, drenado detenido")
			return &DrainResult{Synced: synced, Pending: len(pending) - synced},
				fmt.Errorf("push de cambio %d: %w", change.ID, err)
		}
		if err := s.ledger.MarkSynced(ctx, []int64{change.ID}); err != nil {
			return &DrainResult{Synced: synced, Pending: len(pending) - synced},
				fmt.Errorf("marcar cambio %d: %w", change.ID, err)
		}
		synced++
	}

	s.log.Info().Int("sincronizados", synced).Msg("drenado completo")
	return &DrainResult{Synced: synced}, nil
}

// Status cuenta las entradas aún pendientes sin drenarlas.
func (s *Service) Status(ctx context.Context) (*dto.SyncStatusResponse, error) {
	pending, err := s.ledger.Pending(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SyncStatusResponse{Pending: len(pending)}, nil
}
