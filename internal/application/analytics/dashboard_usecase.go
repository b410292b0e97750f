// Package analytics contiene los casos de uso del dashboard de inventario de TI.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// DefaultWarrantyWindowDays días hacia adelante para el widget de garantías.
const DefaultWarrantyWindowDays = 30

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: repositorios de solo lectura; ninguna consulta bloquea filas.
type DashboardUseCase struct {
	assets     repository.AssetRepository
	issues     repository.IssueRepository
	transfers  repository.TransferRepository
	software   repository.SoftwareRepository
	windowDays int
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso. windowDays <= 0 usa DefaultWarrantyWindowDays.
func NewDashboardUseCase(
	assets repository.AssetRepository,
	issues repository.IssueRepository,
	transfers repository.TransferRepository,
	software repository.SoftwareRepository,
	windowDays int,
) *DashboardUseCase {
	if windowDays <= 0 {
		windowDays = DefaultWarrantyWindowDays
	}
	return &DashboardUseCase{
		assets:     assets,
		issues:     issues,
		transfers:  transfers,
		software:   software,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo (errgroup; la primera que falla cancela el resto):
//  1. CountByStatus            → TotalAssets, InStock, Issued, Garbage
//  2. CountActive              → ActiveIssues
//  3. CountByStatus(Pending)   → PendingTransf
//  4. ListWarrantyExpiring     → WarrantyExpiring
//  5. Software.List            → Licenses
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := todayStart.AddDate(0, 0, uc.windowDays+1).Add(-time.Nanosecond)

	var (
		byStatus  map[entity.AssetStatus]int
		active    int
		pending   int
		expiring  []*entity.Asset
		softwares []*entity.Software
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if byStatus, err = uc.assets.CountByStatus(gctx); err != nil {
			return fmt.Errorf("dashboard: activos por estado: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if active, err = uc.issues.CountActive(gctx); err != nil {
			return fmt.Errorf("dashboard: entregas activas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pending, err = uc.transfers.CountByStatus(gctx, entity.TransferStatusPending); err != nil {
			return fmt.Errorf("dashboard: traspasos pendientes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if expiring, err = uc.assets.ListWarrantyExpiring(gctx, todayStart, windowEnd); err != nil {
			return fmt.Errorf("dashboard: garantías por vencer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if softwares, err = uc.software.List(gctx, 0, 0); err != nil {
			return fmt.Errorf("dashboard: licencias: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		InStock:            byStatus[entity.AssetStatusInStock],
		Issued:             byStatus[entity.AssetStatusIssued],
		Garbage:            byStatus[entity.AssetStatusGarbage],
		ActiveIssues:       active,
		PendingTransf:      pending,
		WarrantyWindowDays: uc.windowDays,
		WarrantyExpiring:   dto.FromAssets(expiring),
		Licenses:           make([]dto.LicenseUsageDTO, 0, len(softwares)),
	}
	for _, n := range byStatus {
		out.TotalAssets += n
	}
	for _, sw := range softwares {
		out.Licenses = append(out.Licenses, dto.LicenseUsageDTO{
			SoftwareID: sw.ID,
			Name:       sw.Name,
			SeatsTotal: sw.SeatsTotal,
			SeatsUsed:  sw.SeatsUsed,
			UsagePct:   usagePct(sw.SeatsUsed, sw.SeatsTotal),
		})
	}
	return out, nil
}

// usagePct porcentaje con un decimal.
func usagePct(used, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(used)*1000/float64(total)) / 10
}
