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

var _ repository.IssueRepository = (*IssueRepo)(nil)

// IssueRepo implementación de IssueRepository sobre PostgreSQL.
type IssueRepo struct {
	q Querier
}

// NewIssueRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIssueRepository(q Querier) *IssueRepo {
	return &IssueRepo{q: q}
}

const issueColumns = `id, asset_id, asset_code, employee_name, emp_code, department, division, designation,
	location, phone, hod, email, asset_type, make_model, serial_no, ip_address, operating_system, software,
	remarks, terms, issued_by, returned_at, returned_by, created_at, updated_at`

func scanIssue(row pgx.Row) (*entity.Issue, error) {
	var i entity.Issue
	h := &i.Holder
	err := row.Scan(
		&i.ID, &i.AssetID, &i.AssetCode, &h.Name, &h.Code, &h.Department, &h.Division, &h.Designation,
		&h.Location, &h.Phone, &h.HOD, &h.Email, &i.AssetType, &i.MakeModel, &i.SerialNo, &i.IPAddress,
		&i.OperatingSystem, &i.InstalledSoftware, &i.Remarks, &i.Terms, &i.IssuedBy, &i.ReturnedAt,
		&i.ReturnedBy, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserta la entrega. El índice único parcial uq_issues_active_asset devuelve ErrAlreadyIssued.
func (r *IssueRepo) Create(ctx context.Context, i *entity.Issue) error {
	software := i.InstalledSoftware
	if software == nil {
		software = []string{}
	}
	h := i.Holder
	query := `
		INSERT INTO issues (` + issueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(ctx, query,
		i.ID, i.AssetID, i.AssetCode, h.Name, h.Code, h.Department, h.Division, h.Designation,
		h.Location, h.Phone, h.HOD, h.Email, i.AssetType, i.MakeModel, i.SerialNo, i.IPAddress,
		i.OperatingSystem, software, i.Remarks, i.Terms, i.IssuedBy, i.ReturnedAt, i.ReturnedBy,
		i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyIssued, i.AssetCode)
		}
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

func (r *IssueRepo) getOne(ctx context.Context, query string, id string) (*entity.Issue, error) {
	if !validID(id) {
		return nil, nil
	}
	i, err := scanIssue(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue: %w", err)
	}
	return i, nil
}

// GetByID obtiene una entrega por ID.
func (r *IssueRepo) GetByID(ctx context.Context, id string) (*entity.Issue, error) {
	return r.getOne(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
}

// GetForUpdate obtiene la entrega y bloquea la fila.
func (r *IssueRepo) GetForUpdate(ctx context.Context, id string) (*entity.Issue, error) {
	return r.getOne(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1 FOR UPDATE`, id)
}

// GetActiveByAssetID entrega sin devolver del activo, o (nil, nil).
func (r *IssueRepo) GetActiveByAssetID(ctx context.Context, assetID string) (*entity.Issue, error) {
	return r.getOne(ctx, `SELECT `+issueColumns+` FROM issues WHERE asset_id = $1 AND returned_at IS NULL`, assetID)
}

// UpdateHolder reescribe los datos del custodio (traspaso).
func (r *IssueRepo) UpdateHolder(ctx context.Context, id string, h entity.Employee, at time.Time) error {
	query := `
		UPDATE issues SET employee_name = $2, emp_code = $3, department = $4, division = $5, designation = $6,
			location = $7, phone = $8, hod = $9, email = $10, updated_at = $11
		WHERE id = $1 AND returned_at IS NULL`
	tag, err := r.q.Exec(ctx, query, id, h.Name, h.Code, h.Department, h.Division, h.Designation,
		h.Location, h.Phone, h.HOD, h.Email, at)
	if err != nil {
		return fmt.Errorf("update issue holder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entrega activa %s", domain.ErrNotFound, id)
	}
	return nil
}

// Close marca la entrega como devuelta.
func (r *IssueRepo) Close(ctx context.Context, id, returnedBy string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE issues SET returned_at = $2, returned_by = $3, updated_at = $2 WHERE id = $1 AND returned_at IS NULL`,
		id, at, returnedBy)
	if err != nil {
		return fmt.Errorf("close issue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: la entrega %s ya fue devuelta", domain.ErrConflict, id)
	}
	return nil
}

func (r *IssueRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Issue, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Issue, 0)
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// ListActive entregas sin devolver, más recientes primero.
func (r *IssueRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Issue, error) {
	return r.list(ctx, `SELECT `+issueColumns+` FROM issues WHERE returned_at IS NULL ORDER BY created_at DESC, id`+pageClause(limit, offset))
}

// ListByAsset todas las entregas de un activo.
func (r *IssueRepo) ListByAsset(ctx context.Context, assetID string) ([]*entity.Issue, error) {
	if !validID(assetID) {
		return []*entity.Issue{}, nil
	}
	return r.list(ctx, `SELECT `+issueColumns+` FROM issues WHERE asset_id = $1 ORDER BY created_at DESC, id`, assetID)
}

// CountActive número de entregas sin devolver.
func (r *IssueRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM issues WHERE returned_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active issues: %w", err)
	}
	return n, nil
}
