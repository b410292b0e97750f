package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// IssueRepository define el puerto de persistencia para entregas de activos.
type IssueRepository interface {
	// Create retorna domain.ErrAlreadyIssued si el activo ya tiene una entrega activa.
	Create(ctx context.Context, issue *entity.Issue) error
	GetByID(ctx context.Context, id string) (*entity.Issue, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Issue, error)
	GetActiveByAssetID(ctx context.Context, assetID string) (*entity.Issue, error)
	UpdateHolder(ctx context.Context, id string, holder entity.Employee, at time.Time) error
	Close(ctx context.Context, id, returnedBy string, at time.Time) error
	// ListActive entregas sin devolver, más recientes primero. limit <= 0 = sin límite.
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Issue, error)
	ListByAsset(ctx context.Context, assetID string) ([]*entity.Issue, error)
	CountActive(ctx context.Context) (int, error)
}
