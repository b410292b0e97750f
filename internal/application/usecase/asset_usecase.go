package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// AssetUseCase consultas de activos (solo lectura; las escrituras viven en lifecycle.Engine).
type AssetUseCase struct {
	assets  repository.AssetRepository
	issues  repository.IssueRepository
	garbage repository.GarbageRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(assets repository.AssetRepository, issues repository.IssueRepository, garbage repository.GarbageRepository) *AssetUseCase {
	return &AssetUseCase{assets: assets, issues: issues, garbage: garbage}
}

// List activos por created_at DESC, con filtro opcional de estado y búsqueda libre.
func (uc *AssetUseCase) List(ctx context.Context, status, search string, page dto.PageRequest) (*dto.AssetListResponse, error) {
	page.DefaultPage()
	filter := repository.AssetFilter{
		Status: entity.AssetStatus(strings.ToUpper(strings.TrimSpace(status))),
		Search: strings.TrimSpace(search),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidStatus, status)
	}
	list, err := uc.assets.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.assets.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.AssetListResponse{
		Items: dto.FromAssets(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Get activo con la entrega activa (si está ISSUED) y la baja (si está GARBAGE).
func (uc *AssetUseCase) Get(ctx context.Context, id string) (*dto.AssetDetailResponse, error) {
	asset, err := uc.assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
	}
	out := &dto.AssetDetailResponse{AssetResponse: dto.FromAsset(asset)}

	switch asset.Status {
	case entity.AssetStatusIssued:
		issue, err := uc.issues.GetActiveByAssetID(ctx, asset.ID)
		if err != nil {
			return nil, err
		}
		if issue != nil {
			r := dto.FromIssue(issue)
			out.CurrentIssue = &r
		}
	case entity.AssetStatusGarbage:
		g, err := uc.garbage.GetByAssetID(ctx, asset.ID)
		if err != nil {
			return nil, err
		}
		if g != nil {
			r := dto.FromGarbage(g)
			out.Garbage = &r
		}
	}
	return out, nil
}

// Custody entregas (activas y cerradas) de un activo, más reciente primero.
// ErrNotFound si el activo no existe.
func (uc *AssetUseCase) Custody(ctx context.Context, assetID string) ([]dto.IssueResponse, error) {
	asset, err := uc.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: activo %s", domain.ErrNotFound, assetID)
	}
	list, err := uc.issues.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return dto.FromIssues(list), nil
}
