package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	appinv "github.com/foodworks/backoffice/internal/application/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSweeper struct {
	mu    sync.Mutex
	calls int
	stats *appinv.SweepStats
	err   error
}

func (f *fakeSweeper) Sweep(ctx context.Context, today time.Time) (*appinv.SweepStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.stats != nil {
		return f.stats, nil
	}
	return &appinv.SweepStats{Date: today}, nil
}

func (f *fakeSweeper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRepairer struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeRepairer) Repair(ctx context.Context, today time.Time) (*appinv.RepairStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return &appinv.RepairStats{}, nil
}

type denyingLock struct{}

func (denyingLock) Acquire(ctx context.Context, date string) (bool, error) {
	return false, nil
}

func TestParseRunAt(t *testing.T) {
	hour, minute, err := ParseRunAt("03:45")
	require.NoError(t, err)
	assert.Equal(t, 3, hour)
	assert.Equal(t, 45, minute)

	_, _, err = ParseRunAt("midnight")
	assert.Error(t, err)
}

func TestSweepScheduler_CheckAndTrigger(t *testing.T) {
	newScheduler := func(sweeper *fakeSweeper, repairer *fakeRepairer, lock DailyLock, repairBacklog bool) *SweepScheduler {
		cfg := DefaultSweepSchedulerConfig()
		cfg.RepairBacklog = repairBacklog
		var r BacklogRepairer
		if repairer != nil {
			r = repairer
		}
		return NewSweepScheduler(cfg, sweeper, r, lock, zap.NewNop())
	}

	t.Run("runs when the daily time has passed", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		s := newScheduler(sweeper, nil, nil, false)

		s.checkAndTrigger(context.Background())
		assert.Equal(t, 1, sweeper.callCount())
	})

	t.Run("does not run twice on the same day", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		s := newScheduler(sweeper, nil, nil, false)

		s.checkAndTrigger(context.Background())
		s.checkAndTrigger(context.Background())
		assert.Equal(t, 1, sweeper.callCount())
	})

	t.Run("does not run before the daily time", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		s := newScheduler(sweeper, nil, nil, false)
		s.config.RunHour = 23
		s.config.RunMinute = 59

		s.checkAndTrigger(context.Background())
		assert.Equal(t, 0, sweeper.callCount())
	})

	t.Run("yields the run when another instance holds the lock", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		s := newScheduler(sweeper, nil, denyingLock{}, false)

		s.checkAndTrigger(context.Background())
		assert.Equal(t, 0, sweeper.callCount())

		// the date is remembered so the loop stops retrying
		s.checkAndTrigger(context.Background())
		assert.Equal(t, 0, sweeper.callCount())
	})

	t.Run("repairs the backlog before sweeping when enabled", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		repairer := &fakeRepairer{}
		s := newScheduler(sweeper, repairer, nil, true)

		s.checkAndTrigger(context.Background())
		assert.Equal(t, 1, sweeper.callCount())
		assert.Equal(t, 1, repairer.calls)
	})
}

func TestSweepScheduler_StartStop(t *testing.T) {
	sweeper := &fakeSweeper{}
	cfg := DefaultSweepSchedulerConfig()
	cfg.CheckInterval = 10 * time.Millisecond
	// push the run time into the future so the loop stays idle
	cfg.RunHour = 23
	cfg.RunMinute = 59
	s := NewSweepScheduler(cfg, sweeper, nil, nil, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background())) // second start is a no-op

	time.Sleep(30 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}
