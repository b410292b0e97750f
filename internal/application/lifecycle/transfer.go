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

// CreateTransfer despacha según el modo: "request" crea una solicitud Pending; cualquier otro valor
// (incluido vacío) ejecuta el traspaso inmediato.
func (e *Engine) CreateTransfer(ctx context.Context, actor string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.Mode == dto.TransferModeRequest {
		return e.RequestTransfer(ctx, actor, in)
	}
	return e.Transfer(ctx, actor, in)
}

// Transfer traspaso inmediato: el activo debe estar ISSUED; se inserta el traspaso COMPLETED y la
// entrega activa pasa al empleado destino, todo en la misma tx con la fila del activo bloqueada.
// Errores: ErrMissingField, ErrInvalidInput (origen = destino), ErrNotFound, ErrConflict (estado != ISSUED,
// origen distinto del custodio actual o solicitud pendiente).
func (e *Engine) Transfer(ctx context.Context, actor string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	req, err := normalizeTransfer(in)
	if err != nil {
		return nil, err
	}

	var t *entity.Transfer
	err = e.tx.Run(ctx, func(r ports.TxRepos) error {
		asset, issue, err := e.lockTransferable(ctx, r, req)
		if err != nil {
			return err
		}

		now := e.now()
		t = e.newTransfer(asset, issue, req, actor, entity.TransferStatusCompleted, now)
		t.DecidedBy = actor
		t.DecidedAt = &now
		if err := r.Transfers.Create(ctx, t); err != nil {
			return err
		}
		if err := r.Issues.UpdateHolder(ctx, issue.ID, t.ToEmployee, now); err != nil {
			return err
		}
		return e.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventAssetTransferred,
			AssetCode:   asset.AssetCode,
			AssetID:     asset.ID,
			Description: fmt.Sprintf("Activo %s traspasado de %s a %s", asset.AssetCode, t.FromEmpCode, t.ToEmpCode),
			PerformedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromTransfer(t)
	return &out, nil
}

// RequestTransfer crea una solicitud de traspaso Pending. La entrega no cambia hasta la aprobación.
func (e *Engine) RequestTransfer(ctx context.Context, actor string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	req, err := normalizeTransfer(in)
	if err != nil {
		return nil, err
	}

	var t *entity.Transfer
	err = e.tx.Run(ctx, func(r ports.TxRepos) error {
		asset, issue, err := e.lockTransferable(ctx, r, req)
		if err != nil {
			return err
		}
		t = e.newTransfer(asset, issue, req, actor, entity.TransferStatusPending, e.now())
		if err := r.Transfers.Create(ctx, t); err != nil {
			return err
		}
		return e.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventAssetTransferRequested,
			AssetCode:   asset.AssetCode,
			AssetID:     asset.ID,
			Description: fmt.Sprintf("Solicitud de traspaso de %s: %s → %s", asset.AssetCode, t.FromEmpCode, t.ToEmpCode),
			PerformedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromTransfer(t)
	return &out, nil
}

// DecideTransfer aprueba o rechaza una solicitud Pending.
// Approved vuelve a validar (con la fila del activo bloqueada) que el activo siga ISSUED con el
// mismo custodio de origen y reescribe la entrega activa.
// Errores: ErrInvalidStatus (decisión distinta de Approved/Rejected), ErrNotFound, ErrConflict.
func (e *Engine) DecideTransfer(ctx context.Context, actor, transferID string, in dto.DecideTransferRequest) (*dto.TransferResponse, error) {
	transferID = strings.TrimSpace(transferID)
	if transferID == "" {
		return nil, domain.MissingField("id")
	}
	decision := entity.TransferStatus(strings.TrimSpace(in.Status))

	var t *entity.Transfer
	err := e.tx.Run(ctx, func(r ports.TxRepos) error {
		found, err := r.Transfers.GetByID(ctx, transferID)
		if err != nil {
			return err
		}
		if found == nil {
			return fmt.Errorf("%w: traspaso %s", domain.ErrNotFound, transferID)
		}
		// El activo se bloquea antes que el traspaso y la entrega.
		asset, err := r.Assets.GetForUpdate(ctx, found.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, found.AssetCode)
		}
		t, err = r.Transfers.GetForUpdate(ctx, found.ID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traspaso %s", domain.ErrNotFound, transferID)
		}
		next, err := statemachine.NextTransferStatus(t.Status, decision)
		if err != nil {
			return err
		}

		now := e.now()
		if next == entity.TransferStatusRejected {
			if err := r.Transfers.UpdateStatus(ctx, t.ID, next, actor, now); err != nil {
				return err
			}
			t.Status, t.DecidedBy, t.DecidedAt = next, actor, &now
			return e.history.Append(ctx, r.History, history.Entry{
				EventType:   entity.EventAssetTransferRejected,
				AssetCode:   t.AssetCode,
				AssetID:     t.AssetID,
				Description: fmt.Sprintf("Traspaso de %s rechazado (%s → %s)", t.AssetCode, t.FromEmpCode, t.ToEmpCode),
				PerformedBy: actor,
			})
		}

		if _, err := statemachine.Next(asset.Status, statemachine.OpTransfer); err != nil {
			return err
		}
		issue, err := r.Issues.GetActiveByAssetID(ctx, asset.ID)
		if err != nil {
			return err
		}
		if issue == nil || issue.Holder.Code != t.FromEmpCode {
			return fmt.Errorf("%w: el custodio de %s cambió desde la solicitud", domain.ErrConflict, asset.AssetCode)
		}
		if err := r.Transfers.UpdateStatus(ctx, t.ID, next, actor, now); err != nil {
			return err
		}
		if err := r.Issues.UpdateHolder(ctx, issue.ID, t.ToEmployee, now); err != nil {
			return err
		}
		t.Status, t.DecidedBy, t.DecidedAt = next, actor, &now
		return e.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventAssetTransferred,
			AssetCode:   asset.AssetCode,
			AssetID:     asset.ID,
			Description: fmt.Sprintf("Activo %s traspasado de %s a %s (aprobado)", asset.AssetCode, t.FromEmpCode, t.ToEmpCode),
			PerformedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromTransfer(t)
	return &out, nil
}

type transferRequest struct {
	assetCode string
	fromCode  string
	to        entity.Employee
	date      *time.Time
	remarks   string
}

func normalizeTransfer(in dto.CreateTransferRequest) (transferRequest, error) {
	req := transferRequest{
		assetCode: strings.TrimSpace(in.AssetCode),
		fromCode:  strings.TrimSpace(in.FromEmpCode),
		to:        in.To.ToEmployee(),
		date:      in.TransferDate.Ptr(),
		remarks:   strings.TrimSpace(in.Remarks),
	}
	req.to.Name = strings.TrimSpace(req.to.Name)
	req.to.Code = strings.TrimSpace(req.to.Code)
	switch {
	case req.assetCode == "":
		return req, domain.MissingField("asset_code")
	case req.to.Code == "":
		return req, domain.MissingField("to.emp_code")
	case req.to.Name == "":
		return req, domain.MissingField("to.employee_name")
	case req.fromCode != "" && req.fromCode == req.to.Code:
		return req, fmt.Errorf("%w: el empleado origen y destino son el mismo", domain.ErrInvalidInput)
	}
	return req, nil
}

// lockTransferable bloquea el activo y valida que pueda traspasarse: ISSUED, con entrega activa,
// custodio igual al origen indicado, destino distinto y sin solicitudes pendientes.
func (e *Engine) lockTransferable(ctx context.Context, r ports.TxRepos, req transferRequest) (*entity.Asset, *entity.Issue, error) {
	asset, err := r.Assets.GetByCodeForUpdate(ctx, req.assetCode)
	if err != nil {
		return nil, nil, err
	}
	if asset == nil {
		return nil, nil, fmt.Errorf("%w: activo %s", domain.ErrNotFound, req.assetCode)
	}
	if _, err := statemachine.Next(asset.Status, statemachine.OpTransfer); err != nil {
		return nil, nil, err
	}
	issue, err := r.Issues.GetActiveByAssetID(ctx, asset.ID)
	if err != nil {
		return nil, nil, err
	}
	if issue == nil {
		return nil, nil, fmt.Errorf("%w: %s no tiene una entrega activa", domain.ErrConflict, asset.AssetCode)
	}
	if req.fromCode != "" && req.fromCode != issue.Holder.Code {
		return nil, nil, fmt.Errorf("%w: %s está asignado a %s, no a %s", domain.ErrConflict, asset.AssetCode, issue.Holder.Code, req.fromCode)
	}
	if issue.Holder.Code == req.to.Code {
		return nil, nil, fmt.Errorf("%w: %s ya está asignado a %s", domain.ErrInvalidInput, asset.AssetCode, req.to.Code)
	}
	pending, err := r.Transfers.HasPending(ctx, asset.ID)
	if err != nil {
		return nil, nil, err
	}
	if pending {
		return nil, nil, fmt.Errorf("%w: %s tiene una solicitud de traspaso pendiente", domain.ErrConflict, asset.AssetCode)
	}
	return asset, issue, nil
}

func (e *Engine) newTransfer(asset *entity.Asset, issue *entity.Issue, req transferRequest, actor string, status entity.TransferStatus, now time.Time) *entity.Transfer {
	date := e.today()
	if req.date != nil {
		date = *req.date
	}
	return &entity.Transfer{
		ID:           uuid.New().String(),
		AssetID:      asset.ID,
		AssetCode:    asset.AssetCode,
		FromEmpCode:  issue.Holder.Code,
		ToEmpCode:    req.to.Code,
		ToEmployee:   req.to,
		TransferDate: date,
		Status:       status,
		Remarks:      req.remarks,
		RequestedBy:  actor,
		CreatedAt:    now,
	}
}
