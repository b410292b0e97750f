package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// SoftwareRepository define el puerto de persistencia para licencias y sus asignaciones.
type SoftwareRepository interface {
	Create(ctx context.Context, sw *entity.Software) error
	GetByID(ctx context.Context, id string) (*entity.Software, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Software, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Software, error)
	UpdateSeatsUsed(ctx context.Context, id string, seatsUsed int, at time.Time) error

	// CreateAssignment retorna domain.ErrDuplicate si la licencia ya está asignada al activo.
	CreateAssignment(ctx context.Context, a *entity.SoftwareAssignment) error
	// DeleteAssignment retorna false si no existía la asignación.
	DeleteAssignment(ctx context.Context, softwareID, assetID string) (bool, error)
	ListAssignments(ctx context.Context, softwareID string) ([]*entity.SoftwareAssignment, error)
}
