package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus estado del ciclo de vida de un activo.
type AssetStatus string

// Estados válidos de un activo.
const (
	AssetStatusInStock AssetStatus = "IN_STOCK" // en bodega, disponible
	AssetStatusIssued  AssetStatus = "ISSUED"   // asignado a un empleado
	AssetStatusGarbage AssetStatus = "GARBAGE"  // dado de baja, estado final
)

// Valid indica si el estado pertenece al enum.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusInStock, AssetStatusIssued, AssetStatusGarbage:
		return true
	}
	return false
}

// Asset representa un equipo físico del inventario de TI.
// AssetCode es la clave de negocio (única); ID es la clave sustituta usada por las relaciones.
type Asset struct {
	ID            string
	AssetCode     string
	Make          string
	Model         string
	SerialNo      string
	PONo          string
	InvoiceNo     string
	InvoiceDate   *time.Time
	Amount        decimal.Decimal
	Vendor        string
	WarrantyYears int
	WarrantyStart *time.Time
	WarrantyEnd   *time.Time
	Status        AssetStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
