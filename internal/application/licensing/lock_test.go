package licensing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/history"
	"github.com/jhoicas/Activos-api/internal/application/licensing"
	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
	"github.com/jhoicas/Activos-api/internal/testutil/memstore"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

var errUnlockedRead = errors.New("lectura del activo sin bloqueo dentro de la transacción")

// strictAssets rechaza lecturas del activo sin FOR UPDATE y anota los bloqueos tomados.
type strictAssets struct {
	repository.AssetRepository
	locks *[]string
}

func (r strictAssets) GetByCode(context.Context, string) (*entity.Asset, error) {
	return nil, errUnlockedRead
}

func (r strictAssets) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Asset, error) {
	*r.locks = append(*r.locks, "asset")
	return r.AssetRepository.GetByCodeForUpdate(ctx, code)
}

type strictSoftware struct {
	repository.SoftwareRepository
	locks *[]string
}

func (r strictSoftware) GetForUpdate(ctx context.Context, id string) (*entity.Software, error) {
	*r.locks = append(*r.locks, "software")
	return r.SoftwareRepository.GetForUpdate(ctx, id)
}

type strictRunner struct {
	store *memstore.Store
	locks *[]string
}

func (s strictRunner) Run(ctx context.Context, fn func(ports.TxRepos) error) error {
	return s.store.Run(ctx, func(r ports.TxRepos) error {
		r.Assets = strictAssets{AssetRepository: r.Assets, locks: s.locks}
		r.Software = strictSoftware{SoftwareRepository: r.Software, locks: s.locks}
		return fn(r)
	})
}

func TestAssign_BloqueaElActivo(t *testing.T) {
	f := setup(t, "LAP-001")
	ctx := context.Background()
	sw := f.office(t, 2)

	var locks []string
	svc := licensing.NewService(strictRunner{store: f.store, locks: &locks}, f.store.Repos().Software, history.NewRecorder(logger.Nop()))

	_, err := svc.Assign(ctx, actor, sw.ID, dto.AssignSoftwareRequest{AssetCode: "LAP-001"})
	require.NoError(t, err)
	assert.Equal(t, []string{"software", "asset"}, locks)
}
