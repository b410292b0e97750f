package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/lifecycle"
)

func TestNext_TablaDeTransiciones(t *testing.T) {
	cases := []struct {
		name    string
		from    entity.AssetStatus
		op      lifecycle.Operation
		want    entity.AssetStatus
		wantErr error
	}{
		{"issue desde stock", entity.AssetStatusInStock, lifecycle.OpIssue, entity.AssetStatusIssued, nil},
		{"issue desde issued", entity.AssetStatusIssued, lifecycle.OpIssue, entity.AssetStatusIssued, domain.ErrConflict},
		{"issue desde garbage", entity.AssetStatusGarbage, lifecycle.OpIssue, entity.AssetStatusGarbage, domain.ErrConflict},
		{"return desde issued", entity.AssetStatusIssued, lifecycle.OpReturn, entity.AssetStatusInStock, nil},
		{"return desde stock", entity.AssetStatusInStock, lifecycle.OpReturn, entity.AssetStatusInStock, domain.ErrConflict},
		{"transfer desde issued", entity.AssetStatusIssued, lifecycle.OpTransfer, entity.AssetStatusIssued, nil},
		{"transfer desde stock", entity.AssetStatusInStock, lifecycle.OpTransfer, entity.AssetStatusInStock, domain.ErrConflict},
		{"garbage desde stock", entity.AssetStatusInStock, lifecycle.OpGarbage, entity.AssetStatusGarbage, nil},
		{"garbage desde issued", entity.AssetStatusIssued, lifecycle.OpGarbage, entity.AssetStatusIssued, domain.ErrConflict},
		{"garbage desde garbage", entity.AssetStatusGarbage, lifecycle.OpGarbage, entity.AssetStatusGarbage, domain.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lifecycle.Next(tc.from, tc.op)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNext_GarbageEsEstadoFinal(t *testing.T) {
	for _, op := range []lifecycle.Operation{lifecycle.OpIssue, lifecycle.OpReturn, lifecycle.OpTransfer, lifecycle.OpGarbage} {
		_, err := lifecycle.Next(entity.AssetStatusGarbage, op)
		assert.ErrorIs(t, err, domain.ErrConflict, "ninguna operación sale de GARBAGE (%s)", op)
	}
}

func TestNext_OperacionDesconocida(t *testing.T) {
	_, err := lifecycle.Next(entity.AssetStatusInStock, lifecycle.Operation("repair"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNextTransferStatus(t *testing.T) {
	got, err := lifecycle.NextTransferStatus(entity.TransferStatusPending, entity.TransferStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusApproved, got)

	got, err = lifecycle.NextTransferStatus(entity.TransferStatusPending, entity.TransferStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusRejected, got)

	_, err = lifecycle.NextTransferStatus(entity.TransferStatusPending, entity.TransferStatus("Maybe"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = lifecycle.NextTransferStatus(entity.TransferStatusPending, entity.TransferStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus, "COMPLETED no es una decisión")

	_, err = lifecycle.NextTransferStatus(entity.TransferStatusApproved, entity.TransferStatusRejected)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestWarrantyEnd(t *testing.T) {
	start := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	end := lifecycle.WarrantyEnd(&start, 3)
	require.NotNil(t, end)
	assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), *end)

	assert.Nil(t, lifecycle.WarrantyEnd(nil, 3))
	assert.Nil(t, lifecycle.WarrantyEnd(&start, 0))
}
