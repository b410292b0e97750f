// Package licensing administra las licencias de software y sus cupos asignados a activos.
package licensing

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
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// Service casos de uso de licencias.
type Service struct {
	tx       ports.TxRunner
	software repository.SoftwareRepository
	history  *history.Recorder
	now      func() time.Time
}

// NewService construye el servicio. software se usa para las lecturas fuera de transacción.
func NewService(tx ports.TxRunner, software repository.SoftwareRepository, recorder *history.Recorder) *Service {
	return &Service{tx: tx, software: software, history: recorder, now: time.Now}
}

// Register da de alta una licencia con seats_used = 0.
func (s *Service) Register(ctx context.Context, actor string, in dto.CreateSoftwareRequest) (*dto.SoftwareResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.MissingField("name")
	}
	if in.SeatsTotal < 1 {
		return nil, fmt.Errorf("%w: seats_total debe ser mayor que cero", domain.ErrInvalidInput)
	}
	now := s.now()
	sw := &entity.Software{
		ID:         uuid.New().String(),
		Name:       name,
		Vendor:     strings.TrimSpace(in.Vendor),
		Version:    strings.TrimSpace(in.Version),
		LicenseKey: strings.TrimSpace(in.LicenseKey),
		SeatsTotal: in.SeatsTotal,
		ExpiresAt:  in.ExpiresAt.Ptr(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Software.Create(ctx, sw); err != nil {
			return err
		}
		return s.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventSoftwareRegistered,
			Description: fmt.Sprintf("Licencia %s %s registrada con %d cupos", sw.Name, sw.Version, sw.SeatsTotal),
			PerformedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromSoftware(sw)
	return &out, nil
}

// Assign ocupa un cupo de la licencia para el activo indicado.
// Errores: ErrNotFound, ErrConflict (activo dado de baja), ErrNoSeatsAvailable, ErrDuplicate (ya asignada).
func (s *Service) Assign(ctx context.Context, actor, softwareID string, in dto.AssignSoftwareRequest) (*dto.SoftwareAssignmentResponse, error) {
	code := strings.TrimSpace(in.AssetCode)
	if code == "" {
		return nil, domain.MissingField("asset_code")
	}

	var a *entity.SoftwareAssignment
	err := s.tx.Run(ctx, func(r ports.TxRepos) error {
		sw, err := r.Software.GetForUpdate(ctx, softwareID)
		if err != nil {
			return err
		}
		if sw == nil {
			return fmt.Errorf("%w: software %s", domain.ErrNotFound, softwareID)
		}
		// Bloqueo del activo: una baja concurrente no puede colarse entre la verificación y la asignación.
		asset, err := r.Assets.GetByCodeForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, code)
		}
		if asset.Status == entity.AssetStatusGarbage {
			return fmt.Errorf("%w: %s está dado de baja", domain.ErrConflict, code)
		}
		if sw.SeatsAvailable() <= 0 {
			return fmt.Errorf("%w: %s (%d/%d)", domain.ErrNoSeatsAvailable, sw.Name, sw.SeatsUsed, sw.SeatsTotal)
		}

		now := s.now()
		a = &entity.SoftwareAssignment{
			ID:         uuid.New().String(),
			SoftwareID: sw.ID,
			AssetID:    asset.ID,
			AssetCode:  asset.AssetCode,
			AssignedBy: actor,
			CreatedAt:  now,
		}
		if err := r.Software.CreateAssignment(ctx, a); err != nil {
			return err
		}
		if err := r.Software.UpdateSeatsUsed(ctx, sw.ID, sw.SeatsUsed+1, now); err != nil {
			return err
		}
		return s.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventSoftwareAssigned,
			AssetCode:   asset.AssetCode,
			AssetID:     asset.ID,
			Description: fmt.Sprintf("Licencia %s asignada a %s", sw.Name, asset.AssetCode),
			PerformedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromAssignment(a)
	return &out, nil
}

// Unassign libera el cupo que ocupa el activo. ErrNotFound si la asignación no existe.
func (s *Service) Unassign(ctx context.Context, actor, softwareID, assetCode string) error {
	assetCode = strings.TrimSpace(assetCode)
	return s.tx.Run(ctx, func(r ports.TxRepos) error {
		sw, err := r.Software.GetForUpdate(ctx, softwareID)
		if err != nil {
			return err
		}
		if sw == nil {
			return fmt.Errorf("%w: software %s", domain.ErrNotFound, softwareID)
		}
		asset, err := r.Assets.GetByCode(ctx, assetCode)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, assetCode)
		}
		deleted, err := r.Software.DeleteAssignment(ctx, sw.ID, asset.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("%w: %s no tiene asignada la licencia %s", domain.ErrNotFound, assetCode, sw.Name)
		}
		used := sw.SeatsUsed - 1
		if used < 0 {
			used = 0
		}
		if err := r.Software.UpdateSeatsUsed(ctx, sw.ID, used, s.now()); err != nil {
			return err
		}
		return s.history.Append(ctx, r.History, history.Entry{
			EventType:   entity.EventSoftwareUnassigned,
			AssetCode:   asset.AssetCode,
			AssetID:     asset.ID,
			Description: fmt.Sprintf("Licencia %s liberada de %s", sw.Name, asset.AssetCode),
			PerformedBy: actor,
		})
	})
}

// List licencias paginadas.
func (s *Service) List(ctx context.Context, page dto.PageRequest) ([]dto.SoftwareResponse, error) {
	page.DefaultPage()
	list, err := s.software.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SoftwareResponse, 0, len(list))
	for _, sw := range list {
		out = append(out, dto.FromSoftware(sw))
	}
	return out, nil
}

// Get licencia con sus asignaciones.
func (s *Service) Get(ctx context.Context, id string) (*dto.SoftwareDetailResponse, error) {
	sw, err := s.software.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sw == nil {
		return nil, fmt.Errorf("%w: software %s", domain.ErrNotFound, id)
	}
	assignments, err := s.software.ListAssignments(ctx, sw.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.SoftwareDetailResponse{
		SoftwareResponse: dto.FromSoftware(sw),
		Assignments:      make([]dto.SoftwareAssignmentResponse, 0, len(assignments)),
	}
	for _, a := range assignments {
		out.Assignments = append(out.Assignments, dto.FromAssignment(a))
	}
	return out, nil
}
