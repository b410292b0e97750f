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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, asset_id, asset_code, from_emp_code, to_emp_code, to_employee_name, to_department,
	to_division, to_designation, to_location, to_phone, to_hod, to_email, transfer_date, status, remarks,
	requested_by, decided_by, decided_at, created_at`

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var status string
	to := &t.ToEmployee
	err := row.Scan(
		&t.ID, &t.AssetID, &t.AssetCode, &t.FromEmpCode, &t.ToEmpCode, &to.Name, &to.Department,
		&to.Division, &to.Designation, &to.Location, &to.Phone, &to.HOD, &to.Email, &t.TransferDate,
		&status, &t.Remarks, &t.RequestedBy, &t.DecidedBy, &t.DecidedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	to.Code = t.ToEmpCode
	t.Status = entity.TransferStatus(status)
	return &t, nil
}

// Create inserta el traspaso. Una segunda solicitud Pending para el mismo activo viola
// uq_transfers_pending_asset y devuelve ErrConflict.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	to := t.ToEmployee
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.AssetID, t.AssetCode, t.FromEmpCode, t.ToEmpCode, to.Name, to.Department,
		to.Division, to.Designation, to.Location, to.Phone, to.HOD, to.Email, t.TransferDate,
		string(t.Status), t.Remarks, t.RequestedBy, t.DecidedBy, t.DecidedAt, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s tiene una solicitud de traspaso pendiente", domain.ErrConflict, t.AssetCode)
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

func (r *TransferRepo) getOne(ctx context.Context, query string, id string) (*entity.Transfer, error) {
	if !validID(id) {
		return nil, nil
	}
	t, err := scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// GetByID obtiene un traspaso por ID.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.getOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
}

// GetForUpdate obtiene el traspaso y bloquea la fila.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.getOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id)
}

// HasPending indica si el activo tiene una solicitud Pending.
func (r *TransferRepo) HasPending(ctx context.Context, assetID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transfers WHERE asset_id = $1 AND status = 'Pending')`, assetID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pending transfer: %w", err)
	}
	return exists, nil
}

// UpdateStatus registra la decisión sobre el traspaso.
func (r *TransferRepo) UpdateStatus(ctx context.Context, id string, status entity.TransferStatus, decidedBy string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE transfers SET status = $2, decided_by = $3, decided_at = $4 WHERE id = $1`,
		id, string(status), decidedBy, at)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: traspaso %s", domain.ErrNotFound, id)
	}
	return nil
}

// List traspasos más recientes primero; status vacío = todos.
func (r *TransferRepo) List(ctx context.Context, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id` + pageClause(limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Transfer, 0)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountByStatus número de traspasos en un estado.
func (r *TransferRepo) CountByStatus(ctx context.Context, status entity.TransferStatus) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transfers WHERE status = $1`, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transfers: %w", err)
	}
	return n, nil
}
