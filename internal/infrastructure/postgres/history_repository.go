package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial append-only sobre la tabla asset_history.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

const historyColumns = `id, event_type, asset_code, asset_id, description, performed_by, created_at`

// Append inserta un evento. asset_id vacío se guarda como NULL (eventos de software sin activo).
func (r *HistoryRepo) Append(ctx context.Context, e *entity.HistoryEvent) error {
	var assetID *string
	if e.AssetID != "" {
		assetID = &e.AssetID
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO asset_history (`+historyColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, string(e.EventType), e.AssetCode, assetID, e.Description, e.PerformedBy, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListRecent eventos más recientes primero.
func (r *HistoryRepo) ListRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEvent, error) {
	return r.list(ctx, `SELECT `+historyColumns+` FROM asset_history ORDER BY created_at DESC, id`+pageClause(limit, offset))
}

// ListByAssetCode eventos de un activo, más recientes primero.
func (r *HistoryRepo) ListByAssetCode(ctx context.Context, assetCode string, limit int) ([]*entity.HistoryEvent, error) {
	return r.list(ctx,
		`SELECT `+historyColumns+` FROM asset_history WHERE asset_code = $1 ORDER BY created_at DESC, id`+pageClause(limit, 0),
		assetCode)
}

func (r *HistoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.HistoryEvent, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.HistoryEvent, 0)
	for rows.Next() {
		var e entity.HistoryEvent
		var eventType string
		var assetID *string
		if err := rows.Scan(&e.ID, &eventType, &e.AssetCode, &assetID, &e.Description, &e.PerformedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.EventType = entity.EventType(eventType)
		if assetID != nil {
			e.AssetID = *assetID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
