// Package warranty revisa las garantías próximas a vencer y avisa por el Notifier configurado.
package warranty

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

const notifyTimeout = 15 * time.Second

// AlertUseCase busca activos (no dados de baja) cuya garantía vence dentro de la ventana.
type AlertUseCase struct {
	assets     repository.AssetRepository
	notifier   ports.Notifier
	windowDays int
	log        *logger.Logger
	now        func() time.Time
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(assets repository.AssetRepository, notifier ports.Notifier, windowDays int, log *logger.Logger) *AlertUseCase {
	if windowDays <= 0 {
		windowDays = 30
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AlertUseCase{
		assets:     assets,
		notifier:   notifier,
		windowDays: windowDays,
		log:        log.Component("warranty"),
		now:        time.Now,
	}
}

// Run envía un único aviso con todos los activos encontrados. Sin activos no notifica.
// Devuelve cuántos activos incluyó el aviso.
func (uc *AlertUseCase) Run(ctx context.Context) (int, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	until := today.AddDate(0, 0, uc.windowDays+1).Add(-time.Nanosecond)

	list, err := uc.assets.ListWarrantyExpiring(ctx, today, until)
	if err != nil {
		return 0, fmt.Errorf("warranty: listar activos: %w", err)
	}
	if len(list) == 0 {
		uc.log.Debug().Int("window_days", uc.windowDays).Msg("sin garantías por vencer")
		return 0, nil
	}

	alert := ports.WarrantyAlert{
		GeneratedAt: now,
		WindowDays:  uc.windowDays,
		Assets:      make([]ports.WarrantyAlertRow, 0, len(list)),
	}
	for _, a := range list {
		end := *a.WarrantyEnd
		endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, today.Location())
		alert.Assets = append(alert.Assets, ports.WarrantyAlertRow{
			AssetCode:   a.AssetCode,
			Make:        a.Make,
			Model:       a.Model,
			SerialNo:    a.SerialNo,
			Status:      string(a.Status),
			WarrantyEnd: end,
			DaysLeft:    int(math.Round(endDay.Sub(today).Hours() / 24)),
		})
	}

	nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := uc.notifier.NotifyWarrantyExpiring(nctx, alert); err != nil {
		return 0, fmt.Errorf("warranty: notificar: %w", err)
	}
	uc.log.Info().Int("assets", len(alert.Assets)).Int("window_days", uc.windowDays).Msg("aviso de garantías enviado")
	return len(alert.Assets), nil
}
