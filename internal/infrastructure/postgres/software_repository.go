package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.SoftwareRepository = (*SoftwareRepo)(nil)

// SoftwareRepo licencias y asignaciones sobre PostgreSQL.
type SoftwareRepo struct {
	q Querier
}

// NewSoftwareRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSoftwareRepository(q Querier) *SoftwareRepo {
	return &SoftwareRepo{q: q}
}

const softwareColumns = `id, name, vendor, version, license_key, seats_total, seats_used, expires_at, created_at, updated_at`

func scanSoftware(row pgx.Row) (*entity.Software, error) {
	var s entity.Software
	err := row.Scan(&s.ID, &s.Name, &s.Vendor, &s.Version, &s.LicenseKey, &s.SeatsTotal, &s.SeatsUsed,
		&s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la licencia.
func (r *SoftwareRepo) Create(ctx context.Context, s *entity.Software) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO software (`+softwareColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Name, s.Vendor, s.Version, s.LicenseKey, s.SeatsTotal, s.SeatsUsed, s.ExpiresAt, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert software: %w", err)
	}
	return nil
}

func (r *SoftwareRepo) getOne(ctx context.Context, query, id string) (*entity.Software, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSoftware(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get software: %w", err)
	}
	return s, nil
}

// GetByID obtiene una licencia.
func (r *SoftwareRepo) GetByID(ctx context.Context, id string) (*entity.Software, error) {
	return r.getOne(ctx, `SELECT `+softwareColumns+` FROM software WHERE id = $1`, id)
}

// GetForUpdate obtiene la licencia y bloquea la fila (serializa el conteo de cupos).
func (r *SoftwareRepo) GetForUpdate(ctx context.Context, id string) (*entity.Software, error) {
	return r.getOne(ctx, `SELECT `+softwareColumns+` FROM software WHERE id = $1 FOR UPDATE`, id)
}

// List licencias por nombre.
func (r *SoftwareRepo) List(ctx context.Context, limit, offset int) ([]*entity.Software, error) {
	rows, err := r.q.Query(ctx, `SELECT `+softwareColumns+` FROM software ORDER BY name, id`+pageClause(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("list software: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Software, 0)
	for rows.Next() {
		s, err := scanSoftware(rows)
		if err != nil {
			return nil, fmt.Errorf("scan software: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateSeatsUsed fija seats_used; el CHECK de la tabla impide superar seats_total.
func (r *SoftwareRepo) UpdateSeatsUsed(ctx context.Context, id string, used int, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE software SET seats_used = $2, updated_at = $3 WHERE id = $1`, id, used, at)
	if err != nil {
		return fmt.Errorf("update seats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: software %s", domain.ErrNotFound, id)
	}
	return nil
}

// CreateAssignment vincula licencia y activo. ErrDuplicate si ya existía.
func (r *SoftwareRepo) CreateAssignment(ctx context.Context, a *entity.SoftwareAssignment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO software_assignments (id, software_id, asset_id, asset_code, assigned_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.SoftwareID, a.AssetID, a.AssetCode, a.AssignedBy, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s ya tiene la licencia", domain.ErrDuplicate, a.AssetCode)
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// DeleteAssignment elimina la asignación; false si no existía.
func (r *SoftwareRepo) DeleteAssignment(ctx context.Context, softwareID, assetID string) (bool, error) {
	if !validID(softwareID) || !validID(assetID) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx,
		`DELETE FROM software_assignments WHERE software_id = $1 AND asset_id = $2`, softwareID, assetID)
	if err != nil {
		return false, fmt.Errorf("delete assignment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListAssignments asignaciones de una licencia, más recientes primero.
func (r *SoftwareRepo) ListAssignments(ctx context.Context, softwareID string) ([]*entity.SoftwareAssignment, error) {
	if !validID(softwareID) {
		return []*entity.SoftwareAssignment{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, software_id, asset_id, asset_code, assigned_by, created_at
		FROM software_assignments WHERE software_id = $1 ORDER BY created_at DESC, id`, softwareID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.SoftwareAssignment, 0)
	for rows.Next() {
		var a entity.SoftwareAssignment
		if err := rows.Scan(&a.ID, &a.SoftwareID, &a.AssetID, &a.AssetCode, &a.AssignedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
