package dto

import "time"

// HistoryEventResponse salida de un evento del historial.
type HistoryEventResponse struct {
	ID          string    `json:"id"`
	EventType   string    `json:"event_type"`
	AssetCode   string    `json:"asset_code,omitempty"`
	AssetID     string    `json:"asset_id,omitempty"`
	Description string    `json:"description"`
	PerformedBy string    `json:"performed_by"`
	CreatedAt   time.Time `json:"created_at"`
}
