package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddJobValidation(t *testing.T) {
	s := NewScheduler()

	assert.Error(t, s.AddJob(Job{Name: "zero", Fn: func(context.Context) error { return nil }}))
	assert.Error(t, s.AddJob(Job{Name: "nil", Interval: time.Second}))
}

func TestScheduler_RunsAtStartAndStops(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	require.NoError(t, s.AddJob(Job{
		Name:       "count",
		Interval:   time.Hour,
		RunAtStart: true,
		Fn: func(context.Context) error {
			runs.Add(1)
			return errors.New("logged, not fatal")
		},
	}))

	// Act
	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	// Assert
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_TicksUntilContextCancelled(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	require.NoError(t, s.AddJob(Job{
		Name:     "tick",
		Interval: 10 * time.Millisecond,
		Fn: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, func() { NewScheduler().Stop() })
}
