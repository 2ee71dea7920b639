// Package scheduler corre las tareas periódicas del proceso: drenado del
// ledger hacia el espejo remoto y respaldo nocturno del documento completo.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/PuntoVenta-local/internal/application/sync"
	"github.com/jhoicas/PuntoVenta-local/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/pkg/config"
	"github.com/jhoicas/PuntoVenta-local/pkg/logger"
)

// Scheduler administra las tareas programadas.
type Scheduler struct {
	cron          *cron.Cron
	syncService   *sync.Service // nil si el espejo no está configurado
	maintenanceUC *usecase.MaintenanceUseCase
	cfg           config.SyncConfig
	log           *logger.Logger
}

// NewScheduler construye el scheduler. syncService puede ser nil; en ese
// caso solo se programa el respaldo.
func NewScheduler(cfg config.SyncConfig, syncService *sync.Service, maintenanceUC *usecase.MaintenanceUseCase, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		syncService:   syncService,
		maintenanceUC: maintenanceUC,
		cfg:           cfg,
		log:           log,
	}
}

// Start programa las tareas y arranca el cron.
func (s *Scheduler) Start() {
	if s.syncService != nil {
		if _, err := s.cron.AddFunc(s.cfg.DrainCron, s.drain); err != nil {
			s.log.Error().Err(err).Str("cron", s.cfg.DrainCron).Msg("no se pudo programar el drenado")
		}
	}
	if _, err := s.cron.AddFunc(s.cfg.BackupCron, s.backup); err != nil {
		s.log.Error().Err(err).Str("cron", s.cfg.BackupCron).Msg("no se pudo programar el respaldo")
	}
	s.cron.Start()
	s.log.Info().Msg("scheduler iniciado")
}

// Stop detiene el cron y espera a que los jobs en curso terminen.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.syncService.Drain(ctx)
	if err != nil {
		// Un drenado manual en curso no es falla: el próximo tick reintenta.
		if errors.Is(err, domain.ErrSyncInProgress) {
			s.log.Debug().Msg("drenado ya en curso, tick omitido")
			return
		}
		synced := 0
		if result != nil {
			synced = result.Synced
		}
		s.log.Warn().Err(err).Int("sincronizados", synced).Msg("drenado periódico incompleto")
		return
	}
	if result.Synced > 0 {
		s.log.Info().Int("sincronizados", result.Synced).Msg("drenado periódico completo")
	}
}

func (s *Scheduler) backup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	out, err := s.maintenanceUC.CreateBackup(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("respaldo programado falló")
		return
	}
	s.log.Info().Str("path", out.Path).Msg("respaldo programado creado")
}
