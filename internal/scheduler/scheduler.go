// Package scheduler programa las tareas periódicas de la API (aviso de garantías).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Activos-api/pkg/logger"
)

const jobTimeout = 2 * time.Minute

// WarrantyJob lo que el scheduler necesita del caso de uso de garantías.
type WarrantyJob interface {
	Run(ctx context.Context) (int, error)
}

// Scheduler envuelve robfig/cron con expresiones estándar de 5 campos.
type Scheduler struct {
	cron     *cron.Cron
	warranty WarrantyJob
	spec     string
	log      *logger.Logger
}

// New construye el scheduler; spec es la expresión cron del aviso (WARRANTY_ALERT_CRON).
func New(spec string, warranty WarrantyJob, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:     cron.New(),
		warranty: warranty,
		spec:     spec,
		log:      log.Component("scheduler"),
	}
}

// Start registra los trabajos y arranca el cron. Una expresión inválida es error.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runWarranty); err != nil {
		return fmt.Errorf("scheduler: expresión %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("warranty_cron", s.spec).Msg("scheduler iniciado")
	return nil
}

// Stop detiene el cron y espera a que termine el trabajo en curso (o ctx).
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler: trabajo en curso no terminó antes del cierre")
	}
}

func (s *Scheduler) runWarranty() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.warranty.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("aviso de garantías falló")
		return
	}
	s.log.Info().Int("assets", n).Msg("aviso de garantías ejecutado")
}
