package ports

import (
	"context"
	"time"
)

// WarrantyAlert aviso de garantías próximas a vencer.
type WarrantyAlert struct {
	GeneratedAt time.Time          `json:"generated_at"`
	WindowDays  int                `json:"window_days"`
	Assets      []WarrantyAlertRow `json:"assets"`
}

// WarrantyAlertRow un activo dentro del aviso.
type WarrantyAlertRow struct {
	AssetCode   string    `json:"asset_code"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	SerialNo    string    `json:"serial_no"`
	Status      string    `json:"status"`
	WarrantyEnd time.Time `json:"warranty_end"`
	DaysLeft    int       `json:"days_left"`
}

// Notifier define el puerto de salida para avisos operativos.
// Cualquier adaptador (webhook, log, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type Notifier interface {
	NotifyWarrantyExpiring(ctx context.Context, alert WarrantyAlert) error
}
