package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/history"
	"github.com/jhoicas/Activos-api/internal/application/lifecycle"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
	"github.com/jhoicas/Activos-api/internal/testutil/memstore"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const actor = "it@empresa.com"

func newEngine(t *testing.T) (*lifecycle.Engine, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return lifecycle.NewEngine(store, history.NewRecorder(logger.Nop())), store
}

func register(t *testing.T, e *lifecycle.Engine, code string) *dto.AssetResponse {
	t.Helper()
	out, err := e.Register(context.Background(), actor, dto.RegisterAssetRequest{
		AssetCode: code,
		Make:      "Dell",
		Model:     "Latitude 5420",
		SerialNo:  "SN-" + code,
		Amount:    decimal.NewFromInt(3500000),
	})
	require.NoError(t, err)
	return out
}

func employee(code, name string) dto.EmployeeDTO {
	return dto.EmployeeDTO{Code: code, Name: name, Department: "Sistemas"}
}

func issue(t *testing.T, e *lifecycle.Engine, code, emp string) *dto.IssueResponse {
	t.Helper()
	out, err := e.Issue(context.Background(), actor, dto.CreateIssueRequest{
		AssetCode: code,
		Employee:  employee(emp, "Empleado "+emp),
	})
	require.NoError(t, err)
	return out
}

func assetByCode(t *testing.T, s *memstore.Store, code string) *entity.Asset {
	t.Helper()
	a, err := s.Repos().Assets.GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func events(t *testing.T, s *memstore.Store, code string) []entity.EventType {
	t.Helper()
	list, err := s.Repos().History.ListByAssetCode(context.Background(), code, 0)
	require.NoError(t, err)
	out := make([]entity.EventType, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- { // orden cronológico
		out = append(out, list[i].EventType)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaActivoEnStockConHistorial(t *testing.T) {
	e, store := newEngine(t)
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	out, err := e.Register(context.Background(), actor, dto.RegisterAssetRequest{
		AssetCode:     "LAP-001",
		SerialNo:      "ABC123",
		WarrantyYears: 3,
		WarrantyStart: &dto.Date{Time: start},
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.AssetStatusInStock), out.Status)
	a := assetByCode(t, store, "LAP-001")
	require.NotNil(t, a.WarrantyEnd)
	assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), *a.WarrantyEnd)
	assert.Equal(t, []entity.EventType{entity.EventAssetRegistered}, events(t, store, "LAP-001"))
}

func TestRegister_Validaciones(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	_, err := e.Register(ctx, actor, dto.RegisterAssetRequest{SerialNo: "X"})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = e.Register(ctx, actor, dto.RegisterAssetRequest{AssetCode: "LAP-1", SerialNo: "  "})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = e.Register(ctx, actor, dto.RegisterAssetRequest{AssetCode: "LAP-1", SerialNo: "X", Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_CodigoDuplicado(t *testing.T) {
	e, store := newEngine(t)
	register(t, e, "LAP-001")

	_, err := e.Register(context.Background(), actor, dto.RegisterAssetRequest{AssetCode: "LAP-001", SerialNo: "OTRO"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, events(t, store, "LAP-001"), 1, "el intento fallido no deja historial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Issue / Return
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_PasaAIssued(t *testing.T) {
	e, store := newEngine(t)
	register(t, e, "LAP-001")

	out := issue(t, e, "LAP-001", "E100")

	assert.True(t, out.Active)
	assert.Equal(t, "Dell Latitude 5420", out.MakeModel, "make/model se toma del activo si no se envía")
	assert.Equal(t, entity.AssetStatusIssued, assetByCode(t, store, "LAP-001").Status)
	assert.Equal(t, []entity.EventType{entity.EventAssetRegistered, entity.EventAssetIssued}, events(t, store, "LAP-001"))
}

func TestIssue_Errores(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	register(t, e, "LAP-001")
	issue(t, e, "LAP-001", "E100")

	tests := []struct {
		name string
		in   dto.CreateIssueRequest
		want error
	}{
		{"sin código", dto.CreateIssueRequest{Employee: employee("E1", "Ana")}, domain.ErrMissingField},
		{"sin empleado", dto.CreateIssueRequest{AssetCode: "LAP-001", Employee: employee("", "Ana")}, domain.ErrMissingField},
		{"activo inexistente", dto.CreateIssueRequest{AssetCode: "NOPE", Employee: employee("E1", "Ana")}, domain.ErrNotFound},
		{"ya entregado", dto.CreateIssueRequest{AssetCode: "LAP-001", Employee: employee("E2", "Luis")}, domain.ErrAlreadyIssued},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Issue(ctx, actor, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestIssue_ActivoDadoDeBaja(t *testing.T) {
	e, _ := newEngine(t)
	a := register(t, e, "LAP-001")
	_, err := e.MarkGarbage(context.Background(), actor, a.ID, dto.MarkGarbageRequest{Reason: "pantalla rota"})
	require.NoError(t, err)

	_, err = e.Issue(context.Background(), actor, dto.CreateIssueRequest{AssetCode: "LAP-001", Employee: employee("E1", "Ana")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReturn_CierraEntregaYVuelveAStock(t *testing.T) {
	e, store := newEngine(t)
	register(t, e, "LAP-001")
	iss := issue(t, e, "LAP-001", "E100")

	out, err := e.Return(context.Background(), actor, iss.ID, dto.ReturnIssueRequest{Remarks: "fin de contrato"})
	require.NoError(t, err)

	assert.False(t, out.Active)
	assert.Equal(t, entity.AssetStatusInStock, assetByCode(t, store, "LAP-001").Status)

	// la entrega se conserva como historial de custodia
	stored, err := store.Repos().Issues.GetByID(context.Background(), iss.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ReturnedAt)
	assert.Equal(t, actor, stored.ReturnedBy)

	_, err = e.Return(context.Background(), actor, iss.ID, dto.ReturnIssueRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict, "no se puede devolver dos veces")

	// tras la devolución puede volver a entregarse
	issue(t, e, "LAP-001", "E200")
}

func TestReturn_EntregaInexistente(t *testing.T) {
	e, _ := newEngine(t)
	_, err := e.Return(context.Background(), actor, "no-existe", dto.ReturnIssueRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func transferReq(code, from, to string, mode string) dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		AssetCode:   code,
		FromEmpCode: from,
		To:          employee(to, "Empleado "+to),
		Mode:        mode,
	}
}

func TestTransfer_Inmediato(t *testing.T) {
	e, store := newEngine(t)
	a := register(t, e, "LAP-001")
	iss := issue(t, e, "LAP-001", "E100")

	out, err := e.CreateTransfer(context.Background(), actor, transferReq("LAP-001", "E100", "E200", dto.TransferModeImmediate))
	require.NoError(t, err)

	assert.Equal(t, string(entity.TransferStatusCompleted), out.Status)
	assert.Equal(t, "E100", out.FromEmpCode)
	assert.Equal(t, entity.AssetStatusIssued, assetByCode(t, store, "LAP-001").Status, "el traspaso mantiene ISSUED")

	active, err := store.Repos().Issues.GetActiveByAssetID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, iss.ID, active.ID)
	assert.Equal(t, "E200", active.Holder.Code)
	assert.Contains(t, events(t, store, "LAP-001"), entity.EventAssetTransferred)
}

func TestTransfer_Errores(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	register(t, e, "LAP-001")
	register(t, e, "LAP-002") // IN_STOCK
	issue(t, e, "LAP-001", "E100")

	tests := []struct {
		name string
		in   dto.CreateTransferRequest
		want error
	}{
		{"sin destino", transferReq("LAP-001", "E100", "", ""), domain.ErrMissingField},
		{"origen igual a destino", transferReq("LAP-001", "E100", "E100", ""), domain.ErrInvalidInput},
		{"destino es el custodio", transferReq("LAP-001", "", "E100", ""), domain.ErrInvalidInput},
		{"origen distinto del custodio", transferReq("LAP-001", "E999", "E200", ""), domain.ErrConflict},
		{"activo en stock", transferReq("LAP-002", "", "E200", ""), domain.ErrConflict},
		{"activo inexistente", transferReq("NOPE", "", "E200", ""), domain.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.CreateTransfer(ctx, actor, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTransfer_SolicitudAprobada(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	a := register(t, e, "LAP-001")
	issue(t, e, "LAP-001", "E100")

	req, err := e.CreateTransfer(ctx, actor, transferReq("LAP-001", "", "E200", dto.TransferModeRequest))
	require.NoError(t, err)
	assert.Equal(t, string(entity.TransferStatusPending), req.Status)

	// con una solicitud pendiente no se permite otro traspaso
	_, err = e.CreateTransfer(ctx, actor, transferReq("LAP-001", "", "E300", dto.TransferModeImmediate))
	assert.ErrorIs(t, err, domain.ErrConflict)

	active, _ := store.Repos().Issues.GetActiveByAssetID(ctx, a.ID)
	assert.Equal(t, "E100", active.Holder.Code, "la solicitud no cambia la custodia")

	out, err := e.DecideTransfer(ctx, "admin@empresa.com", req.ID, dto.DecideTransferRequest{Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.TransferStatusApproved), out.Status)
	assert.Equal(t, "admin@empresa.com", out.DecidedBy)

	active, _ = store.Repos().Issues.GetActiveByAssetID(ctx, a.ID)
	assert.Equal(t, "E200", active.Holder.Code)

	_, err = e.DecideTransfer(ctx, actor, req.ID, dto.DecideTransferRequest{Status: "Rejected"})
	assert.ErrorIs(t, err, domain.ErrConflict, "una solicitud ya decidida no cambia")
}

func TestTransfer_SolicitudRechazada(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	a := register(t, e, "LAP-001")
	issue(t, e, "LAP-001", "E100")
	req, err := e.CreateTransfer(ctx, actor, transferReq("LAP-001", "E100", "E200", dto.TransferModeRequest))
	require.NoError(t, err)

	_, err = e.DecideTransfer(ctx, actor, req.ID, dto.DecideTransferRequest{Status: "COMPLETED"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	out, err := e.DecideTransfer(ctx, actor, req.ID, dto.DecideTransferRequest{Status: "Rejected"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.TransferStatusRejected), out.Status)

	active, _ := store.Repos().Issues.GetActiveByAssetID(ctx, a.ID)
	assert.Equal(t, "E100", active.Holder.Code)
	assert.Contains(t, events(t, store, "LAP-001"), entity.EventAssetTransferRejected)
}

func TestTransfer_AprobacionTrasDevolucion(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()
	register(t, e, "LAP-001")
	iss := issue(t, e, "LAP-001", "E100")
	req, err := e.CreateTransfer(ctx, actor, transferReq("LAP-001", "", "E200", dto.TransferModeRequest))
	require.NoError(t, err)
	_, err = e.Return(ctx, actor, iss.ID, dto.ReturnIssueRequest{})
	require.NoError(t, err)

	_, err = e.DecideTransfer(ctx, actor, req.ID, dto.DecideTransferRequest{Status: "Approved"})
	assert.ErrorIs(t, err, domain.ErrConflict, "el activo ya no está ISSUED")
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkGarbage
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkGarbage(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	a := register(t, e, "LAP-001")

	g, err := e.MarkGarbage(ctx, actor, a.ID, dto.MarkGarbageRequest{Reason: "obsoleto"})
	require.NoError(t, err)
	assert.Equal(t, "obsoleto", g.Reason)
	assert.Equal(t, entity.AssetStatusGarbage, assetByCode(t, store, "LAP-001").Status)

	_, err = e.MarkGarbage(ctx, actor, a.ID, dto.MarkGarbageRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict, "GARBAGE es final")

	_, err = e.MarkGarbage(ctx, actor, "no-existe", dto.MarkGarbageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkGarbage_ActivoEntregado(t *testing.T) {
	e, store := newEngine(t)
	a := register(t, e, "LAP-001")
	issue(t, e, "LAP-001", "E100")

	_, err := e.MarkGarbage(context.Background(), actor, a.ID, dto.MarkGarbageRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.AssetStatusIssued, assetByCode(t, store, "LAP-001").Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: cualquier fallo deshace la operación completa
// ──────────────────────────────────────────────────────────────────────────────

func TestAtomicidad_FalloEnHistorial(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	a := register(t, e, "LAP-001")
	boom := errors.New("disco lleno")
	store.FailOn("history.append", boom)

	_, err := e.Issue(ctx, actor, dto.CreateIssueRequest{AssetCode: "LAP-001", Employee: employee("E1", "Ana")})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, entity.AssetStatusInStock, assetByCode(t, store, "LAP-001").Status)
	active, err := store.Repos().Issues.GetActiveByAssetID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, active, "la entrega no debe persistir")
}

func TestAtomicidad_FalloAlCrearBaja(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	a := register(t, e, "LAP-001")
	store.FailOn("garbage.create", errors.New("fk violada"))

	_, err := e.MarkGarbage(ctx, actor, a.ID, dto.MarkGarbageRequest{})
	require.Error(t, err)

	assert.Equal(t, entity.AssetStatusInStock, assetByCode(t, store, "LAP-001").Status)
	assert.Equal(t, []entity.EventType{entity.EventAssetRegistered}, events(t, store, "LAP-001"))

	store.ClearFailures()
	_, err = e.MarkGarbage(ctx, actor, a.ID, dto.MarkGarbageRequest{})
	require.NoError(t, err)
}

func TestAtomicidad_FalloEnCommit(t *testing.T) {
	e, store := newEngine(t)
	store.FailOn("commit", errors.New("conexión perdida"))

	_, err := e.Register(context.Background(), actor, dto.RegisterAssetRequest{AssetCode: "LAP-001", SerialNo: "X"})
	require.Error(t, err)

	n, err := store.Repos().Assets.Count(context.Background(), repository.AssetFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
