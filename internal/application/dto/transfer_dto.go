package dto

import "time"

// Modos de POST /api/transfers.
const (
	TransferModeImmediate = "immediate" // traspaso directo, queda COMPLETED
	TransferModeRequest   = "request"   // solicitud Pending, requiere aprobación
)

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	AssetCode    string      `json:"asset_code" validate:"required,max=64"`
	FromEmpCode  string      `json:"from_emp_code" validate:"max=64"`
	To           EmployeeDTO `json:"to"`
	TransferDate *Date       `json:"transfer_date,omitempty"`
	Remarks      string      `json:"remarks" validate:"max=1000"`
	Mode         string      `json:"mode" validate:"omitempty,oneof=immediate request"`
}

// DecideTransferRequest body para PATCH /api/transfers/:id.
type DecideTransferRequest struct {
	Status string `json:"status" validate:"required"`
}

// TransferResponse salida de un traspaso.
type TransferResponse struct {
	ID           string      `json:"id"`
	AssetID      string      `json:"asset_id"`
	AssetCode    string      `json:"asset_code"`
	FromEmpCode  string      `json:"from_emp_code"`
	ToEmpCode    string      `json:"to_emp_code"`
	To           EmployeeDTO `json:"to"`
	TransferDate Date        `json:"transfer_date"`
	Status       string      `json:"status"`
	Remarks      string      `json:"remarks"`
	RequestedBy  string      `json:"requested_by"`
	DecidedBy    string      `json:"decided_by,omitempty"`
	DecidedAt    *time.Time  `json:"decided_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TransferListResponse lista paginada de traspasos.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// GarbageListResponse lista paginada de bajas.
type GarbageListResponse struct {
	Items []GarbageResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
