package entity

import "time"

// TransferStatus estado de un traspaso de custodia.
type TransferStatus string

// Estados de traspaso. COMPLETED corresponde al traspaso inmediato (sin aprobación).
const (
	TransferStatusPending   TransferStatus = "Pending"
	TransferStatusApproved  TransferStatus = "Approved"
	TransferStatusRejected  TransferStatus = "Rejected"
	TransferStatusCompleted TransferStatus = "COMPLETED"
)

// Valid indica si el estado pertenece al enum.
func (s TransferStatus) Valid() bool {
	switch s {
	case TransferStatusPending, TransferStatusApproved, TransferStatusRejected, TransferStatusCompleted:
		return true
	}
	return false
}

// Transfer cambio de custodia de un activo ya asignado.
type Transfer struct {
	ID           string
	AssetID      string
	AssetCode    string
	FromEmpCode  string
	ToEmpCode    string
	ToEmployee   Employee // datos del destinatario que reemplazan al custodio en la entrega
	TransferDate time.Time
	Status       TransferStatus
	Remarks      string
	RequestedBy  string
	DecidedBy    string
	DecidedAt    *time.Time
	CreatedAt    time.Time
}
