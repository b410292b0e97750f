package repository

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// HistoryRepository puerto del historial de auditoría. Solo inserción y lectura: nunca update ni delete.
type HistoryRepository interface {
	Append(ctx context.Context, event *entity.HistoryEvent) error
	ListRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEvent, error)
	ListByAssetCode(ctx context.Context, assetCode string, limit int) ([]*entity.HistoryEvent, error)
}
