// Package lifecycle implementa el motor de ciclo de vida de activos: registro, entrega,
// traspaso, devolución y baja.
//
// Cada operación corre en una única transacción (TxRunner): inicia tx → bloquea la fila del
// activo (SELECT FOR UPDATE) → valida el estado → escribe → registra historial → Commit.
// Cualquier error provoca Rollback completo; no quedan estados a medias.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/history"
	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	statemachine "github.com/jhoicas/Activos-api/internal/domain/lifecycle"
)

// Engine casos de uso que cambian el estado o la custodia de un activo.
type Engine struct {
	tx      ports.TxRunner
	history *history.Recorder
	now     func() time.Time
}

// NewEngine construye el motor.
func NewEngine(tx ports.TxRunner, recorder *history.Recorder) *Engine {
	return &Engine{tx: tx, history: recorder, now: time.Now}
}

// Register da de alta un activo en estado IN_STOCK.
// Errores: ErrMissingField si asset_code o serial_no están vacíos; ErrDuplicate si el código ya existe.
func (e *Engine) Register(ctx context.Context, actor string, in dto.RegisterAssetRequest) (*dto.AssetResponse, error) {
	code := strings.TrimSpace(in.AssetCode)
	serial := strings.TrimSpace(in.SerialNo)
	if code == "" {
		return nil, domain.MissingField("asset_code")
	}
	if serial == "" {
		return nil, domain.MissingField("serial_no")
	}
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount no puede ser negativo", domain.ErrInvalidInput)
	}

	now := e.now()
	asset := &entity.Asset{
		ID:            uuid.New().String(),
		AssetCode:     code,
		Make:          strings.TrimSpace(in.Make),
		Model:         strings.TrimSpace(in.Model),
		SerialNo:      serial,
		PONo:          in.PONo,
		InvoiceNo:     in.InvoiceNo,
		InvoiceDate:   in.InvoiceDate.Ptr(),
		Amount:        in.Amount,
		Vendor:        in.Vendor,
		WarrantyYears: in.WarrantyYears,
		WarrantyStart: in.WarrantyStart.Ptr(),
		WarrantyEnd:   in.WarrantyEnd.Ptr(),
		Status:        entity.AssetStatusInStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if asset.WarrantyEnd == nil {
		asset.WarrantyEnd = statemachine.WarrantyEnd(asset.WarrantyStart, asset.WarrantyYears)
	}
	if asset.WarrantyStart != nil && asset.WarrantyEnd != nil && asset.WarrantyEnd.Before(*asset.WarrantyStart) {
		return nil, fmt.Errorf("%w: warranty_end es anterior a warranty_start", domain.ErrInvalidInput)
	}

	err := e.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Assets.Create(ctx, asset); err != nil {
			return err
		}
		return e.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventAssetRegistered,
			AssetCode:   asset.AssetCode,
			AssetID:     asset.ID,
			Description: fmt.Sprintf("Activo %s registrado (%s %s, serie %s)", asset.AssetCode, asset.Make, asset.Model, asset.SerialNo),
			PerformedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromAsset(asset)
	return &out, nil
}

// today fecha actual sin hora (para fechas de baja y traspaso).
func (e *Engine) today() time.Time {
	now := e.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
