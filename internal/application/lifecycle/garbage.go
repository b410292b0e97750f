package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/history"
	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	statemachine "github.com/jhoicas/Activos-api/internal/domain/lifecycle"
)

// MarkGarbage da de baja un activo IN_STOCK: status=GARBAGE + fila en garbage con la fecha de hoy.
// Errores: ErrNotFound si no existe; ErrConflict si el estado no es IN_STOCK.
func (e *Engine) MarkGarbage(ctx context.Context, actor, assetID string, in dto.MarkGarbageRequest) (*dto.GarbageResponse, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, domain.MissingField("id")
	}

	var g *entity.Garbage
	err := e.tx.Run(ctx, func(r ports.TxRepos) error {
		// Bloquea la fila del activo para que dos bajas/traspasos concurrentes se serialicen
		asset, err := r.Assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, assetID)
		}
		next, err := statemachine.Next(asset.Status, statemachine.OpGarbage)
		if err != nil {
			return err
		}

		now := e.now()
		if err := r.Assets.UpdateStatus(ctx, asset.ID, next, now); err != nil {
			return err
		}
		g = &entity.Garbage{
			ID:           uuid.New().String(),
			AssetID:      asset.ID,
			AssetCode:    asset.AssetCode,
			Reason:       strings.TrimSpace(in.Reason),
			DisposedDate: e.today(),
			DisposedBy:   actor,
			CreatedAt:    now,
		}
		if err := r.Garbage.Create(ctx, g); err != nil {
			return err
		}

		desc := fmt.Sprintf("Activo %s dado de baja", asset.AssetCode)
		if g.Reason != "" {
			desc += ": " + g.Reason
		}
		return e.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventAssetGarbage,
			AssetCode:   asset.AssetCode,
			AssetID:     asset.ID,
			Description: desc,
			PerformedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromGarbage(g)
	return &out, nil
}
