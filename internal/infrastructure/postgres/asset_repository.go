package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implementación de AssetRepository sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de activos. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, asset_code, make, model, serial_no, po_no, invoice_no, invoice_date, amount, vendor,
	warranty_years, warranty_start, warranty_end, status, created_at, updated_at`

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	var status string
	err := row.Scan(
		&a.ID, &a.AssetCode, &a.Make, &a.Model, &a.SerialNo, &a.PONo, &a.InvoiceNo, &a.InvoiceDate,
		&a.Amount, &a.Vendor, &a.WarrantyYears, &a.WarrantyStart, &a.WarrantyEnd, &status,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Status = entity.AssetStatus(status)
	return &a, nil
}

// Create inserta el activo. ErrDuplicate si asset_code ya existe.
func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.AssetCode, a.Make, a.Model, a.SerialNo, a.PONo, a.InvoiceNo, a.InvoiceDate,
		a.Amount, a.Vendor, a.WarrantyYears, a.WarrantyStart, a.WarrantyEnd, string(a.Status),
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: asset_code %s", domain.ErrDuplicate, a.AssetCode)
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

func (r *AssetRepo) getOne(ctx context.Context, where string, arg any, lock bool) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE ` + where
	if lock {
		query += ` FOR UPDATE`
	}
	a, err := scanAsset(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// GetByID obtiene un activo por ID. (nil, nil) si no existe.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "id = $1", id, false)
}

// GetByCode obtiene un activo por asset_code.
func (r *AssetRepo) GetByCode(ctx context.Context, code string) (*entity.Asset, error) {
	return r.getOne(ctx, "asset_code = $1", code, false)
}

// GetForUpdate obtiene el activo y bloquea la fila (SELECT FOR UPDATE). Solo tiene efecto dentro de una tx.
func (r *AssetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "id = $1", id, true)
}

// GetByCodeForUpdate igual que GetForUpdate, buscando por asset_code.
func (r *AssetRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Asset, error) {
	return r.getOne(ctx, "asset_code = $1", code, true)
}

// UpdateStatus cambia el estado del activo.
func (r *AssetRepo) UpdateStatus(ctx context.Context, id string, status entity.AssetStatus, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE assets SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update asset status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
	}
	return nil
}

func assetWhere(f repository.AssetFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(asset_code ILIKE $%d OR serial_no ILIKE $%d OR make ILIKE $%d OR model ILIKE $%d)", n, n, n, n))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List activos por created_at DESC.
func (r *AssetRepo) List(ctx context.Context, f repository.AssetFilter, limit, offset int) ([]*entity.Asset, error) {
	where, args := assetWhere(f)
	query := `SELECT ` + assetColumns + ` FROM assets` + where + ` ORDER BY created_at DESC, id` + pageClause(limit, offset)
	return r.list(ctx, query, args...)
}

func (r *AssetRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Asset, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Count total de activos que cumplen el filtro.
func (r *AssetRepo) Count(ctx context.Context, f repository.AssetFilter) (int, error) {
	where, args := assetWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM assets`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}
	return n, nil
}

// CountByStatus conteo por estado.
func (r *AssetRepo) CountByStatus(ctx context.Context) (map[entity.AssetStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM assets GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count assets by status: %w", err)
	}
	defer rows.Close()
	out := make(map[entity.AssetStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan asset count: %w", err)
		}
		out[entity.AssetStatus(status)] = n
	}
	return out, rows.Err()
}

// ListWarrantyExpiring activos no dados de baja con warranty_end en [from, to], los más próximos primero.
func (r *AssetRepo) ListWarrantyExpiring(ctx context.Context, from, to time.Time) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets
		WHERE status <> 'GARBAGE' AND warranty_end BETWEEN $1::date AND $2::date
		ORDER BY warranty_end, asset_code`
	return r.list(ctx, query, from, to)
}
