package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.GarbageRepository = (*GarbageRepo)(nil)

// GarbageRepo implementación de GarbageRepository sobre PostgreSQL.
type GarbageRepo struct {
	q Querier
}

// NewGarbageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGarbageRepository(q Querier) *GarbageRepo {
	return &GarbageRepo{q: q}
}

const garbageColumns = `id, asset_id, asset_code, reason, disposed_date, disposed_by, created_at`

func scanGarbage(row pgx.Row) (*entity.Garbage, error) {
	var g entity.Garbage
	if err := row.Scan(&g.ID, &g.AssetID, &g.AssetCode, &g.Reason, &g.DisposedDate, &g.DisposedBy, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserta la baja. ErrDuplicate si el activo ya tiene una.
func (r *GarbageRepo) Create(ctx context.Context, g *entity.Garbage) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO garbage (`+garbageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID, g.AssetID, g.AssetCode, g.Reason, g.DisposedDate, g.DisposedBy, g.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s ya fue dado de baja", domain.ErrDuplicate, g.AssetCode)
		}
		return fmt.Errorf("insert garbage: %w", err)
	}
	return nil
}

// GetByAssetID baja de un activo o (nil, nil).
func (r *GarbageRepo) GetByAssetID(ctx context.Context, assetID string) (*entity.Garbage, error) {
	if !validID(assetID) {
		return nil, nil
	}
	g, err := scanGarbage(r.q.QueryRow(ctx, `SELECT `+garbageColumns+` FROM garbage WHERE asset_id = $1`, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get garbage: %w", err)
	}
	return g, nil
}

// List bajas más recientes primero.
func (r *GarbageRepo) List(ctx context.Context, limit, offset int) ([]*entity.Garbage, error) {
	rows, err := r.q.Query(ctx, `SELECT `+garbageColumns+` FROM garbage ORDER BY created_at DESC, id`+pageClause(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("list garbage: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Garbage, 0)
	for rows.Next() {
		g, err := scanGarbage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan garbage: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}
