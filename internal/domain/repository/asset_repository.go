package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// AssetFilter filtros opcionales para listar activos.
type AssetFilter struct {
	Status entity.AssetStatus // vacío = todos
	Search string             // coincide con asset_code, serial_no, make o model
}

// AssetRepository define el puerto de persistencia para Asset.
// Los métodos Get* devuelven (nil, nil) si no existe.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	GetByCode(ctx context.Context, code string) (*entity.Asset, error)
	// GetForUpdate y GetByCodeForUpdate bloquean la fila (SELECT FOR UPDATE); usar dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Asset, error)
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Asset, error)
	UpdateStatus(ctx context.Context, id string, status entity.AssetStatus, at time.Time) error
	// List ordena por created_at DESC. limit <= 0 = sin límite.
	List(ctx context.Context, filter AssetFilter, limit, offset int) ([]*entity.Asset, error)
	Count(ctx context.Context, filter AssetFilter) (int, error)
	CountByStatus(ctx context.Context) (map[entity.AssetStatus]int, error)
	// ListWarrantyExpiring activos no dados de baja cuya garantía vence en [from, to].
	ListWarrantyExpiring(ctx context.Context, from, to time.Time) ([]*entity.Asset, error)
}
