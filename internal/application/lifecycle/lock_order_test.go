package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/history"
	"github.com/jhoicas/Activos-api/internal/application/lifecycle"
	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
	"github.com/jhoicas/Activos-api/internal/testutil/memstore"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

// lockLog anota, en orden, cada fila que una operación bloquea (SELECT FOR UPDATE o UPDATE).
type lockLog struct{ locks []string }

func (l *lockLog) add(kind string) { l.locks = append(l.locks, kind) }

func (l *lockLog) reset() { l.locks = nil }

type lockingAssets struct {
	repository.AssetRepository
	log *lockLog
}

func (r lockingAssets) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	r.log.add("asset")
	return r.AssetRepository.GetForUpdate(ctx, id)
}

func (r lockingAssets) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Asset, error) {
	r.log.add("asset")
	return r.AssetRepository.GetByCodeForUpdate(ctx, code)
}

type lockingIssues struct {
	repository.IssueRepository
	log *lockLog
}

func (r lockingIssues) GetForUpdate(ctx context.Context, id string) (*entity.Issue, error) {
	r.log.add("issue")
	return r.IssueRepository.GetForUpdate(ctx, id)
}

func (r lockingIssues) UpdateHolder(ctx context.Context, id string, holder entity.Employee, at time.Time) error {
	r.log.add("issue")
	return r.IssueRepository.UpdateHolder(ctx, id, holder, at)
}

func (r lockingIssues) Close(ctx context.Context, id, returnedBy string, at time.Time) error {
	r.log.add("issue")
	return r.IssueRepository.Close(ctx, id, returnedBy, at)
}

type lockingTransfers struct {
	repository.TransferRepository
	log *lockLog
}

func (r lockingTransfers) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	r.log.add("transfer")
	return r.TransferRepository.GetForUpdate(ctx, id)
}

func (r lockingTransfers) UpdateStatus(ctx context.Context, id string, status entity.TransferStatus, decidedBy string, at time.Time) error {
	r.log.add("transfer")
	return r.TransferRepository.UpdateStatus(ctx, id, status, decidedBy, at)
}

// lockingRunner envuelve el store para registrar el orden de bloqueo de cada transacción.
type lockingRunner struct {
	store *memstore.Store
	log   *lockLog
}

func (r lockingRunner) Run(ctx context.Context, fn func(ports.TxRepos) error) error {
	return r.store.Run(ctx, func(repos ports.TxRepos) error {
		repos.Assets = lockingAssets{AssetRepository: repos.Assets, log: r.log}
		repos.Issues = lockingIssues{IssueRepository: repos.Issues, log: r.log}
		repos.Transfers = lockingTransfers{TransferRepository: repos.Transfers, log: r.log}
		return fn(repos)
	})
}

func TestOrdenDeBloqueo_ActivoPrimero(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	log := &lockLog{}
	e := lifecycle.NewEngine(lockingRunner{store: store, log: log}, history.NewRecorder(logger.Nop()))

	a := register(t, e, "LAP-001")
	register(t, e, "LAP-002")

	steps := []struct {
		name string
		run  func() error
	}{
		{"Issue", func() error {
			_, err := e.Issue(ctx, actor, dto.CreateIssueRequest{AssetCode: "LAP-001", Employee: employee("E1", "Ana")})
			return err
		}},
		{"Transfer", func() error {
			_, err := e.Transfer(ctx, actor, dto.CreateTransferRequest{AssetCode: "LAP-001", To: employee("E2", "Beto")})
			return err
		}},
		{"RequestTransfer", func() error {
			_, err := e.RequestTransfer(ctx, actor, dto.CreateTransferRequest{AssetCode: "LAP-001", To: employee("E3", "Caro")})
			return err
		}},
		{"DecideTransfer", func() error {
			list, err := store.Repos().Transfers.List(ctx, entity.TransferStatusPending, 10, 0)
			require.NoError(t, err)
			require.Len(t, list, 1)
			log.reset()
			_, err = e.DecideTransfer(ctx, actor, list[0].ID, dto.DecideTransferRequest{Status: string(entity.TransferStatusApproved)})
			return err
		}},
		{"Return", func() error {
			active, err := store.Repos().Issues.GetActiveByAssetID(ctx, a.ID)
			require.NoError(t, err)
			require.NotNil(t, active)
			log.reset()
			_, err = e.Return(ctx, actor, active.ID, dto.ReturnIssueRequest{})
			return err
		}},
		{"MarkGarbage", func() error {
			_, err := e.MarkGarbage(ctx, actor, a.ID, dto.MarkGarbageRequest{})
			return err
		}},
	}

	for _, st := range steps {
		log.reset()
		require.NoError(t, st.run(), st.name)
		require.NotEmpty(t, log.locks, st.name)
		assert.Equal(t, "asset", log.locks[0], "%s bloqueó %v", st.name, log.locks)
		for _, l := range log.locks[1:] {
			assert.NotEqual(t, "asset", l, "%s bloqueó el activo después de otra fila: %v", st.name, log.locks)
		}
	}
}
