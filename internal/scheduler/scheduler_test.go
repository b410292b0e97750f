package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/pkg/logger"
)

type fakeJob struct {
	calls int
	err   error
}

func (f *fakeJob) Run(context.Context) (int, error) {
	f.calls++
	return 3, f.err
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := New("no es cron", &fakeJob{}, logger.Nop())
	require.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := New("0 7 * * 1", &fakeJob{}, logger.Nop())
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop(context.Background())
}

func TestRunWarranty(t *testing.T) {
	job := &fakeJob{err: errors.New("boom")}
	s := New("@daily", job, logger.Nop())
	s.runWarranty()
	job.err = nil
	s.runWarranty()
	assert.Equal(t, 2, job.calls)
}
