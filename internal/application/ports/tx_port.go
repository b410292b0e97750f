package ports

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Assets    repository.AssetRepository
	Issues    repository.IssueRepository
	Transfers repository.TransferRepository
	Garbage   repository.GarbageRepository
	History   repository.HistoryRepository
	Software  repository.SoftwareRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error (o el commit falla) se hace Rollback y nada de lo escrito persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
