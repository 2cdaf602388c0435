package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_RunOnStart(t *testing.T) {
	s := New(zap.NewNop())

	var runs atomic.Int32
	s.RegisterCron("@daily", TaskFunc{
		TaskName: "archive",
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}, true)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_IntervalTask(t *testing.T) {
	s := New(zap.NewNop())

	var runs atomic.Int32
	s.RegisterInterval(TaskFunc{
		TaskName: "alerts",
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}, func() time.Duration { return 10 * time.Millisecond })

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_TaskFailureDoesNotStopLoop(t *testing.T) {
	s := New(zap.NewNop())

	var runs atomic.Int32
	s.RegisterInterval(TaskFunc{
		TaskName: "flaky",
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("boom")
		},
	}, func() time.Duration { return 10 * time.Millisecond })

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_StopWaitsForTasks(t *testing.T) {
	s := New(zap.NewNop())

	s.RegisterInterval(TaskFunc{
		TaskName: "noop",
		Fn:       func(ctx context.Context) error { return nil },
	}, func() time.Duration { return time.Hour })

	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	s := New(zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_InvalidCronSpec(t *testing.T) {
	s := New(zap.NewNop())
	s.RegisterCron("not a cron spec", TaskFunc{
		TaskName: "bad",
		Fn:       func(ctx context.Context) error { return nil },
	}, false)

	assert.Error(t, s.Start(context.Background()))
}
