package entity

import "time"

// EventType tipo de evento de auditoría.
type EventType string

// Eventos del historial de activos.
const (
	EventAssetRegistered        EventType = "ASSET_REGISTERED"
	EventAssetIssued            EventType = "ASSET_ISSUED"
	EventAssetTransferred       EventType = "ASSET_TRANSFERRED"
	EventAssetTransferRequested EventType = "ASSET_TRANSFER_REQUESTED"
	EventAssetTransferRejected  EventType = "ASSET_TRANSFER_REJECTED"
	EventAssetGarbage           EventType = "ASSET_GARBAGE"
	EventAssetReturned          EventType = "ASSET_RETURNED"
	EventSoftwareRegistered     EventType = "SOFTWARE_REGISTERED"
	EventSoftwareAssigned       EventType = "SOFTWARE_ASSIGNED"
	EventSoftwareUnassigned     EventType = "SOFTWARE_UNASSIGNED"
)

// HistoryEvent fila del historial (append-only).
// AssetCode y AssetID son opcionales (vacíos en eventos de software sin activo).
type HistoryEvent struct {
	ID          string
	EventType   EventType
	AssetCode   string
	AssetID     string
	Description string
	PerformedBy string
	CreatedAt   time.Time
}
