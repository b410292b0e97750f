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

// Issue entrega un activo IN_STOCK a un empleado y lo pasa a ISSUED.
// Bloquea la fila del activo; además el índice único parcial de issues cierra la carrera
// check-then-insert entre dos entregas simultáneas.
// Errores: ErrMissingField, ErrNotFound, ErrAlreadyIssued (ya tiene entrega activa), ErrConflict (estado != IN_STOCK).
func (e *Engine) Issue(ctx context.Context, actor string, in dto.CreateIssueRequest) (*dto.IssueResponse, error) {
	code := strings.TrimSpace(in.AssetCode)
	holder := in.Employee.ToEmployee()
	holder.Name = strings.TrimSpace(holder.Name)
	holder.Code = strings.TrimSpace(holder.Code)
	switch {
	case code == "":
		return nil, domain.MissingField("asset_code")
	case holder.Name == "":
		return nil, domain.MissingField("employee_name")
	case holder.Code == "":
		return nil, domain.MissingField("emp_code")
	}

	var issue *entity.Issue
	err := e.tx.Run(ctx, func(r ports.TxRepos) error {
		asset, err := r.Assets.GetByCodeForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, code)
		}
		active, err := r.Issues.GetActiveByAssetID(ctx, asset.ID)
		if err != nil {
			return err
		}
		if active != nil {
			return fmt.Errorf("%w: %s está asignado a %s", domain.ErrAlreadyIssued, code, active.Holder.Code)
		}
		next, err := statemachine.Next(asset.Status, statemachine.OpIssue)
		if err != nil {
			return err
		}

		now := e.now()
		issue = &entity.Issue{
			ID:                uuid.New().String(),
			AssetID:           asset.ID,
			AssetCode:         asset.AssetCode,
			Holder:            holder,
			AssetType:         in.AssetType,
			MakeModel:         nonEmpty(in.MakeModel, strings.TrimSpace(asset.Make+" "+asset.Model)),
			SerialNo:          nonEmpty(in.SerialNo, asset.SerialNo),
			IPAddress:         in.IPAddress,
			OperatingSystem:   in.OperatingSystem,
			InstalledSoftware: in.InstalledSoftware,
			Remarks:           in.Remarks,
			Terms:             in.Terms,
			IssuedBy:          actor,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := r.Issues.Create(ctx, issue); err != nil {
			return err
		}
		if err := r.Assets.UpdateStatus(ctx, asset.ID, next, now); err != nil {
			return err
		}
		return e.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventAssetIssued,
			AssetCode:   asset.AssetCode,
			AssetID:     asset.ID,
			Description: fmt.Sprintf("Activo %s entregado a %s (%s)", asset.AssetCode, holder.Name, holder.Code),
			PerformedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromIssue(issue)
	return &out, nil
}

// Return registra la devolución de una entrega: cierra la entrega y el activo vuelve a IN_STOCK.
// La fila de la entrega se conserva (returned_at/returned_by) como historial de custodia.
// Errores: ErrNotFound, ErrConflict si la entrega ya fue devuelta o el activo no está ISSUED.
func (e *Engine) Return(ctx context.Context, actor, issueID string, in dto.ReturnIssueRequest) (*dto.IssueResponse, error) {
	issueID = strings.TrimSpace(issueID)
	if issueID == "" {
		return nil, domain.MissingField("id")
	}

	var issue *entity.Issue
	err := e.tx.Run(ctx, func(r ports.TxRepos) error {
		// Orden de bloqueo: activo y luego entrega, igual que Transfer y DecideTransfer.
		found, err := r.Issues.GetByID(ctx, issueID)
		if err != nil {
			return err
		}
		if found == nil {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, issueID)
		}
		asset, err := r.Assets.GetForUpdate(ctx, found.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, found.AssetCode)
		}
		issue, err = r.Issues.GetForUpdate(ctx, found.ID)
		if err != nil {
			return err
		}
		if issue == nil {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, issueID)
		}
		if !issue.Active() {
			return fmt.Errorf("%w: la entrega ya fue devuelta", domain.ErrConflict)
		}
		next, err := statemachine.Next(asset.Status, statemachine.OpReturn)
		if err != nil {
			return err
		}

		now := e.now()
		if err := r.Issues.Close(ctx, issue.ID, actor, now); err != nil {
			return err
		}
		if err := r.Assets.UpdateStatus(ctx, asset.ID, next, now); err != nil {
			return err
		}
		issue.ReturnedAt = &now
		issue.ReturnedBy = actor
		issue.UpdatedAt = now

		desc := fmt.Sprintf("Activo %s devuelto por %s (%s)", asset.AssetCode, issue.Holder.Name, issue.Holder.Code)
		if rem := strings.TrimSpace(in.Remarks); rem != "" {
			desc += ": " + rem
		}
		return e.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventAssetReturned,
			AssetCode:   asset.AssetCode,
			AssetID:     asset.ID,
			Description: desc,
			PerformedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromIssue(issue)
	return &out, nil
}

func nonEmpty(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
