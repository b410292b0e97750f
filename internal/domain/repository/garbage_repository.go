package repository

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// GarbageRepository define el puerto de persistencia para bajas de activos.
type GarbageRepository interface {
	Create(ctx context.Context, g *entity.Garbage) error
	GetByAssetID(ctx context.Context, assetID string) (*entity.Garbage, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Garbage, error)
}
