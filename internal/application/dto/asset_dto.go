package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterAssetRequest body para POST /api/assets.
type RegisterAssetRequest struct {
	AssetCode     string          `json:"asset_code" validate:"required,max=64"`
	SerialNo      string          `json:"serial_no" validate:"required,max=128"`
	Make          string          `json:"make" validate:"max=128"`
	Model         string          `json:"model" validate:"max=128"`
	PONo          string          `json:"po_no" validate:"max=64"`
	InvoiceNo     string          `json:"invoice_no" validate:"max=64"`
	InvoiceDate   *Date           `json:"invoice_date,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Vendor        string          `json:"vendor" validate:"max=200"`
	WarrantyYears int             `json:"warranty_years" validate:"min=0,max=50"`
	WarrantyStart *Date           `json:"warranty_start,omitempty"`
	WarrantyEnd   *Date           `json:"warranty_end,omitempty"`
}

// AssetResponse salida de un activo.
type AssetResponse struct {
	ID            string          `json:"id"`
	AssetCode     string          `json:"asset_code"`
	Make          string          `json:"make"`
	Model         string          `json:"model"`
	SerialNo      string          `json:"serial_no"`
	PONo          string          `json:"po_no"`
	InvoiceNo     string          `json:"invoice_no"`
	InvoiceDate   *Date           `json:"invoice_date"`
	Amount        decimal.Decimal `json:"amount"`
	Vendor        string          `json:"vendor"`
	WarrantyYears int             `json:"warranty_years"`
	WarrantyStart *Date           `json:"warranty_start"`
	WarrantyEnd   *Date           `json:"warranty_end"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AssetDetailResponse activo con su custodio actual (si está asignado).
type AssetDetailResponse struct {
	AssetResponse
	CurrentIssue *IssueResponse   `json:"current_issue,omitempty"`
	Garbage      *GarbageResponse `json:"garbage,omitempty"`
}

// AssetListResponse lista paginada de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// MarkGarbageRequest body para POST /api/assets/:id/garbage.
type MarkGarbageRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// GarbageResponse salida de una baja.
type GarbageResponse struct {
	ID           string    `json:"id"`
	AssetID      string    `json:"asset_id"`
	AssetCode    string    `json:"asset_code"`
	Reason       string    `json:"reason"`
	DisposedDate Date      `json:"disposed_date"`
	DisposedBy   string    `json:"disposed_by"`
	CreatedAt    time.Time `json:"created_at"`
}
