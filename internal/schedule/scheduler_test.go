package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func TestEvery_RunsRepeatedly(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var runs atomic.Int32
	id, err := s.Every(context.Background(), "count", 20*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestEvery_FailingTaskKeepsRunning(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var runs atomic.Int32
	_, err = s.Every(context.Background(), "fail", 20*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return errors.NotFoundError("nav links without a page").Build()
	})
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestEvery_CanceledContextSkipsRuns(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var runs atomic.Int32
	_, err = s.Every(ctx, "canceled", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)

	s.Start()
	time.Sleep(80 * time.Millisecond)
	require.NoError(t, s.Stop())
	assert.Zero(t, runs.Load())
}

func TestEvery_RejectsBadArguments(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	s.Start()
	defer func() { _ = s.Stop() }()

	_, err = s.Every(context.Background(), "zero", 0, func(context.Context) error { return nil })
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = s.Every(context.Background(), "nil", time.Second, nil)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}
