// Package history registra y consulta el historial de auditoría de activos.
//
// El historial es append-only: cada operación del ciclo de vida agrega exactamente
// un evento dentro de su propia transacción. Si el Append falla, la operación completa
// hace Rollback (no existe auditoría "best effort").
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

// Entry datos de un evento a registrar.
type Entry struct {
	EventType   entity.EventType
	AssetCode   string // opcional
	AssetID     string // opcional
	Description string
	PerformedBy string
}

// Recorder escribe eventos en el historial usando el repositorio de la transacción en curso.
type Recorder struct {
	log *logger.Logger
	now func() time.Time
}

// NewRecorder construye el registrador.
func NewRecorder(log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{log: log.Component("history"), now: time.Now}
}

// Append inserta un evento. repo debe estar atado a la misma tx que el cambio que documenta.
func (r *Recorder) Append(ctx context.Context, repo repository.HistoryRepository, e Entry) error {
	if e.EventType == "" {
		return fmt.Errorf("%w: event_type", domain.ErrMissingField)
	}
	performedBy := strings.TrimSpace(e.PerformedBy)
	if performedBy == "" {
		performedBy = "system"
	}
	ev := &entity.HistoryEvent{
		ID:          uuid.New().String(),
		EventType:   e.EventType,
		AssetCode:   e.AssetCode,
		AssetID:     e.AssetID,
		Description: e.Description,
		PerformedBy: performedBy,
		CreatedAt:   r.now(),
	}
	if err := repo.Append(ctx, ev); err != nil {
		r.log.Error().Err(err).
			Str("event_type", string(e.EventType)).
			Str("asset_code", e.AssetCode).
			Str("performed_by", performedBy).
			Msg("no se pudo registrar el evento de historial")
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}
