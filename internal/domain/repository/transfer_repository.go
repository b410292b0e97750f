package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para traspasos.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	HasPending(ctx context.Context, assetID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status entity.TransferStatus, decidedBy string, at time.Time) error
	// List filtra por estado (vacío = todos), más recientes primero. limit <= 0 = sin límite.
	List(ctx context.Context, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error)
	CountByStatus(ctx context.Context, status entity.TransferStatus) (int, error)
}
