package notify

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe el aviso en el log. Se usa cuando no hay WARRANTY_WEBHOOK_URL.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.Component("notify")}
}

func (n *LogNotifier) NotifyWarrantyExpiring(_ context.Context, alert ports.WarrantyAlert) error {
	for _, a := range alert.Assets {
		n.log.Warn().
			Str("asset_code", a.AssetCode).
			Str("serial_no", a.SerialNo).
			Time("warranty_end", a.WarrantyEnd).
			Int("days_left", a.DaysLeft).
			Msg("garantía por vencer")
	}
	n.log.Info().Msg(summary(alert))
	return nil
}
