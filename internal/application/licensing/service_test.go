package licensing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/history"
	"github.com/jhoicas/Activos-api/internal/application/licensing"
	"github.com/jhoicas/Activos-api/internal/application/lifecycle"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/testutil/memstore"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

const actor = "it@empresa.com"

type fixture struct {
	store  *memstore.Store
	engine *lifecycle.Engine
	svc    *licensing.Service
}

func setup(t *testing.T, assetCodes ...string) fixture {
	t.Helper()
	store := memstore.New()
	rec := history.NewRecorder(logger.Nop())
	f := fixture{
		store:  store,
		engine: lifecycle.NewEngine(store, rec),
		svc:    licensing.NewService(store, store.Repos().Software, rec),
	}
	for _, code := range assetCodes {
		_, err := f.engine.Register(context.Background(), actor, dto.RegisterAssetRequest{AssetCode: code, SerialNo: "SN-" + code})
		require.NoError(t, err)
	}
	return f
}

func (f fixture) office(t *testing.T, seats int) *dto.SoftwareResponse {
	t.Helper()
	sw, err := f.svc.Register(context.Background(), actor, dto.CreateSoftwareRequest{Name: "Office 365", Version: "2024", SeatsTotal: seats})
	require.NoError(t, err)
	return sw
}

func TestRegister_Validaciones(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, actor, dto.CreateSoftwareRequest{SeatsTotal: 1})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = f.svc.Register(ctx, actor, dto.CreateSoftwareRequest{Name: "Office", SeatsTotal: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sw := f.office(t, 2)
	assert.Equal(t, 0, sw.SeatsUsed)
	assert.Equal(t, 2, sw.SeatsAvailable)
}

func TestAssign_ConsumeCuposHastaAgotar(t *testing.T) {
	f := setup(t, "LAP-001", "LAP-002")
	ctx := context.Background()
	sw := f.office(t, 1)

	a, err := f.svc.Assign(ctx, actor, sw.ID, dto.AssignSoftwareRequest{AssetCode: "LAP-001"})
	require.NoError(t, err)
	assert.Equal(t, "LAP-001", a.AssetCode)

	_, err = f.svc.Assign(ctx, actor, sw.ID, dto.AssignSoftwareRequest{AssetCode: "LAP-002"})
	assert.ErrorIs(t, err, domain.ErrNoSeatsAvailable)

	detail, err := f.svc.Get(ctx, sw.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.SeatsUsed)
	assert.Equal(t, 0, detail.SeatsAvailable)
	require.Len(t, detail.Assignments, 1)
}

func TestAssign_Errores(t *testing.T) {
	f := setup(t, "LAP-001", "LAP-002")
	ctx := context.Background()
	sw := f.office(t, 5)
	_, err := f.svc.Assign(ctx, actor, sw.ID, dto.AssignSoftwareRequest{AssetCode: "LAP-001"})
	require.NoError(t, err)

	asset, err := f.store.Repos().Assets.GetByCode(ctx, "LAP-002")
	require.NoError(t, err)
	_, err = f.engine.MarkGarbage(ctx, actor, asset.ID, dto.MarkGarbageRequest{})
	require.NoError(t, err)

	tests := []struct {
		name       string
		softwareID string
		code       string
		want       error
	}{
		{"sin código", sw.ID, "", domain.ErrMissingField},
		{"software inexistente", "nope", "LAP-001", domain.ErrNotFound},
		{"activo inexistente", sw.ID, "NOPE", domain.ErrNotFound},
		{"ya asignada", sw.ID, "LAP-001", domain.ErrDuplicate},
		{"activo dado de baja", sw.ID, "LAP-002", domain.ErrConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Assign(ctx, actor, tc.softwareID, dto.AssignSoftwareRequest{AssetCode: tc.code})
			assert.ErrorIs(t, err, tc.want)
		})
	}

	detail, err := f.svc.Get(ctx, sw.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.SeatsUsed, "los intentos fallidos no consumen cupos")
}

func TestUnassign_LiberaCupo(t *testing.T) {
	f := setup(t, "LAP-001", "LAP-002")
	ctx := context.Background()
	sw := f.office(t, 1)
	_, err := f.svc.Assign(ctx, actor, sw.ID, dto.AssignSoftwareRequest{AssetCode: "LAP-001"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Unassign(ctx, actor, sw.ID, "LAP-001"))
	assert.ErrorIs(t, f.svc.Unassign(ctx, actor, sw.ID, "LAP-001"), domain.ErrNotFound)

	_, err = f.svc.Assign(ctx, actor, sw.ID, dto.AssignSoftwareRequest{AssetCode: "LAP-002"})
	require.NoError(t, err, "el cupo liberado puede reutilizarse")

	list, err := f.svc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].SeatsUsed)
}
