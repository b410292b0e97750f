package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/testutil/memstore"
)

func transfer(assetID string, status entity.TransferStatus) *entity.Transfer {
	return &entity.Transfer{
		ID:          uuid.NewString(),
		AssetID:     assetID,
		AssetCode:   "LAP-001",
		FromEmpCode: "E1",
		ToEmpCode:   "E2",
		Status:      status,
		CreatedAt:   time.Now(),
	}
}

func TestTransfers_UnaSolaPendientePorActivo(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New().Repos().Transfers
	assetID := uuid.NewString()

	require.NoError(t, repo.Create(ctx, transfer(assetID, entity.TransferStatusPending)))
	err := repo.Create(ctx, transfer(assetID, entity.TransferStatusPending))
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Los traspasos cerrados y los de otros activos no cuentan
	require.NoError(t, repo.Create(ctx, transfer(assetID, entity.TransferStatusCompleted)))
	require.NoError(t, repo.Create(ctx, transfer(uuid.NewString(), entity.TransferStatusPending)))

	n, err := repo.CountByStatus(ctx, entity.TransferStatusPending)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestList_MasRecientesPrimero(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New().Repos().Transfers
	var ids []string
	for i := 0; i < 5; i++ {
		tr := transfer(uuid.NewString(), entity.TransferStatusCompleted)
		require.NoError(t, repo.Create(ctx, tr))
		ids = append(ids, tr.ID)
	}
	// Actualizar una fila no cambia su posición
	require.NoError(t, repo.UpdateStatus(ctx, ids[1], entity.TransferStatusCompleted, "it", time.Now()))

	list, err := repo.List(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i, tr := range list {
		assert.Equal(t, ids[len(ids)-1-i], tr.ID)
	}
}

func TestRun_RollbackRestauraElEstado(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	boom := errors.New("boom")

	err := store.Run(ctx, func(r ports.TxRepos) error {
		require.NoError(t, r.Transfers.Create(ctx, transfer(uuid.NewString(), entity.TransferStatusPending)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := store.Repos().Transfers.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, store.Commits())
}
