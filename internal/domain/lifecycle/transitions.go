// Package lifecycle contiene la máquina de estados del activo (servicio de dominio puro).
//
//	IN_STOCK --issue--> ISSUED --return--> IN_STOCK
//	ISSUED   --transfer--> ISSUED
//	IN_STOCK --garbage--> GARBAGE (final)
package lifecycle

import (
	"fmt"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// Operation operación que cambia la custodia o el estado de un activo.
type Operation string

// Operaciones del motor de ciclo de vida.
const (
	OpIssue    Operation = "issue"
	OpReturn   Operation = "return"
	OpTransfer Operation = "transfer"
	OpGarbage  Operation = "garbage"
)

var transitions = map[Operation]struct {
	from entity.AssetStatus
	to   entity.AssetStatus
}{
	OpIssue:    {entity.AssetStatusInStock, entity.AssetStatusIssued},
	OpReturn:   {entity.AssetStatusIssued, entity.AssetStatusInStock},
	OpTransfer: {entity.AssetStatusIssued, entity.AssetStatusIssued},
	OpGarbage:  {entity.AssetStatusInStock, entity.AssetStatusGarbage},
}

// Next devuelve el estado resultante de aplicar op sobre un activo en estado from.
// Retorna domain.ErrConflict si la operación no es legal desde ese estado.
func Next(from entity.AssetStatus, op Operation) (entity.AssetStatus, error) {
	t, ok := transitions[op]
	if !ok {
		return from, fmt.Errorf("%w: operación desconocida %q", domain.ErrInvalidInput, op)
	}
	if from != t.from {
		return from, fmt.Errorf("%w: no se puede aplicar %s a un activo en estado %s (se requiere %s)",
			domain.ErrConflict, op, from, t.from)
	}
	return t.to, nil
}

// NextTransferStatus valida la decisión sobre un traspaso.
// Solo Approved o Rejected son decisiones válidas (ErrInvalidStatus) y solo desde Pending (ErrConflict).
func NextTransferStatus(from, decision entity.TransferStatus) (entity.TransferStatus, error) {
	if decision != entity.TransferStatusApproved && decision != entity.TransferStatusRejected {
		return from, fmt.Errorf("%w: %q (use Approved o Rejected)", domain.ErrInvalidStatus, decision)
	}
	if from != entity.TransferStatusPending {
		return from, fmt.Errorf("%w: el traspaso ya está en estado %s", domain.ErrConflict, from)
	}
	return decision, nil
}

// WarrantyEnd calcula el fin de garantía a partir del inicio y los años.
// Devuelve nil si falta el inicio o los años no son positivos.
func WarrantyEnd(start *time.Time, years int) *time.Time {
	if start == nil || years <= 0 {
		return nil
	}
	end := start.AddDate(years, 0, 0)
	return &end
}
