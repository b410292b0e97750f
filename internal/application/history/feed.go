package history

import (
	"context"
	"strings"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// Feed consultas de solo lectura sobre el historial.
type Feed struct {
	repo repository.HistoryRepository
}

// NewFeed construye el caso de uso.
func NewFeed(repo repository.HistoryRepository) *Feed {
	return &Feed{repo: repo}
}

// Recent devuelve los eventos más recientes primero.
func (f *Feed) Recent(ctx context.Context, limit, offset int) ([]dto.HistoryEventResponse, error) {
	list, err := f.repo.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return dto.FromHistory(list), nil
}

// ByAsset devuelve el historial de un activo, más reciente primero.
func (f *Feed) ByAsset(ctx context.Context, assetCode string, limit int) ([]dto.HistoryEventResponse, error) {
	assetCode = strings.TrimSpace(assetCode)
	if assetCode == "" {
		return nil, domain.MissingField("asset_code")
	}
	list, err := f.repo.ListByAssetCode(ctx, assetCode, limit)
	if err != nil {
		return nil, err
	}
	return dto.FromHistory(list), nil
}
