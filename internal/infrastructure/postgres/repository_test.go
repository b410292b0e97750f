package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingQuerier cuenta las consultas enviadas; cualquier consulta falla como lo haría
// PostgreSQL con un UUID mal formado.
type countingQuerier struct{ calls int }

var errInvalidUUID = &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}

func (q *countingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.calls++
	return pgconn.CommandTag{}, errInvalidUUID
}

func (q *countingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.calls++
	return nil, errInvalidUUID
}

func (q *countingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.calls++
	return errRow{}
}

type errRow struct{}

func (errRow) Scan(...any) error { return errInvalidUUID }

func TestValidID(t *testing.T) {
	assert.True(t, validID(uuid.NewString()))
	for _, id := range []string{"", "abc", "123", "LAP-001", "' OR 1=1 --"} {
		assert.False(t, validID(id), id)
	}
}

func TestRepos_IDNoUUIDEsNoEncontrado(t *testing.T) {
	ctx := context.Background()
	q := &countingQuerier{}

	asset, err := NewAssetRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, asset)
	asset, err = NewAssetRepository(q).GetForUpdate(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, asset)

	issues := NewIssueRepository(q)
	issue, err := issues.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, issue)
	issue, err = issues.GetForUpdate(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, issue)
	list, err := issues.ListByAsset(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, list)

	transfer, err := NewTransferRepository(q).GetForUpdate(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, transfer)

	sw := NewSoftwareRepository(q)
	soft, err := sw.GetForUpdate(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, soft)
	deleted, err := sw.DeleteAssignment(ctx, "abc", uuid.NewString())
	require.NoError(t, err)
	assert.False(t, deleted)

	g, err := NewGarbageRepository(q).GetByAssetID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, g)

	user, err := NewUserRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, user)

	assert.Zero(t, q.calls, "un id que no es UUID no debe llegar a la base de datos")
}

func TestRepos_OtrosErroresSePropagan(t *testing.T) {
	q := &countingQuerier{}
	_, err := NewAssetRepository(q).GetByID(context.Background(), uuid.NewString())
	require.Error(t, err)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, 1, q.calls)
}
