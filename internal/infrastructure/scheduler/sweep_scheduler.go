package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	appinv "github.com/foodworks/backoffice/internal/application/inventory"
	"go.uber.org/zap"
)

// ExpirationSweeper runs the daily expiration sweep
type ExpirationSweeper interface {
	Sweep(ctx context.Context, today time.Time) (*appinv.SweepStats, error)
}

// BacklogRepairer settles expired batches older sweeps missed
type BacklogRepairer interface {
	Repair(ctx context.Context, today time.Time) (*appinv.RepairStats, error)
}

// SweepSchedulerConfig holds configuration for the sweep scheduler
type SweepSchedulerConfig struct {
	// RunHour and RunMinute give the local wall-clock time of the daily run
	RunHour   int
	RunMinute int

	// CheckInterval is how often to check whether the run is due
	CheckInterval time.Duration

	// RepairBacklog runs backlog repair before the sweep
	RepairBacklog bool
}

// DefaultSweepSchedulerConfig returns the default configuration: a midnight
// run checked once a minute.
func DefaultSweepSchedulerConfig() SweepSchedulerConfig {
	return SweepSchedulerConfig{
		RunHour:       0,
		RunMinute:     0,
		CheckInterval: time.Minute,
	}
}

// ParseRunAt converts a "HH:MM" wall-clock string into hour and minute.
func ParseRunAt(runAt string) (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", runAt)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid run time %q: %w", runAt, err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// SweepScheduler triggers the expiration sweep once per day. The sweep
// itself is idempotent, so a run that fires late (after downtime) or twice
// (after a restart) is safe; the scheduler only avoids needless work.
type SweepScheduler struct {
	config   SweepSchedulerConfig
	sweeper  ExpirationSweeper
	repairer BacklogRepairer
	lock     DailyLock
	logger   *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewSweepScheduler creates a new sweep scheduler. repairer may be nil when
// backlog repair is disabled; lock may be a NoOpDailyLock for single-instance
// deployments.
func NewSweepScheduler(
	config SweepSchedulerConfig,
	sweeper ExpirationSweeper,
	repairer BacklogRepairer,
	lock DailyLock,
	logger *zap.Logger,
) *SweepScheduler {
	if lock == nil {
		lock = NoOpDailyLock{}
	}
	return &SweepScheduler{
		config:   config,
		sweeper:  sweeper,
		repairer: repairer,
		lock:     lock,
		logger:   logger,
	}
}

// Start starts the scheduler loop
func (s *SweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Sweep scheduler started",
		zap.Int("run_hour", s.config.RunHour),
		zap.Int("run_minute", s.config.RunMinute),
		zap.Duration("check_interval", s.config.CheckInterval),
	)
	return nil
}

// Stop stops the scheduler and waits for an in-flight run to finish
func (s *SweepScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sweep scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SweepScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger runs the sweep when the daily run time has passed and no
// run happened today yet. Comparing against "passed" rather than an exact
// minute means a process started at 09:00 still sweeps that day.
func (s *SweepScheduler) checkAndTrigger(ctx context.Context) {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	s.mu.Lock()
	alreadyRan := s.lastRunDate == currentDate
	s.mu.Unlock()
	if alreadyRan {
		return
	}

	due := now.Hour() > s.config.RunHour ||
		(now.Hour() == s.config.RunHour && now.Minute() >= s.config.RunMinute)
	if !due {
		return
	}

	acquired, err := s.lock.Acquire(ctx, currentDate)
	if err != nil {
		s.logger.Error("Failed to acquire sweep lock", zap.Error(err))
		return
	}
	if !acquired {
		// another instance owns today's run
		s.mu.Lock()
		s.lastRunDate = currentDate
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.lastRunDate = currentDate
	s.mu.Unlock()

	s.run(ctx, now)
}

// RunNow triggers a sweep immediately, outside the daily schedule
func (s *SweepScheduler) RunNow(ctx context.Context) {
	s.run(ctx, time.Now())
}

func (s *SweepScheduler) run(ctx context.Context, now time.Time) {
	if s.config.RepairBacklog && s.repairer != nil {
		repairStats, err := s.repairer.Repair(ctx, now)
		if err != nil {
			s.logger.Error("Backlog repair failed", zap.Error(err))
		} else {
			s.logger.Info("Backlog repair finished",
				zap.Int("batches_repaired", repairStats.BatchesRepaired),
				zap.Int("batches_skipped", repairStats.BatchesSkipped),
			)
		}
	}

	stats, err := s.sweeper.Sweep(ctx, now)
	if err != nil {
		s.logger.Error("Expiration sweep failed", zap.Error(err))
		return
	}

	for _, class := range stats.Classes {
		if class.Error != "" {
			s.logger.Error("Expiration sweep class failed",
				zap.String("item_type", class.ItemType.String()),
				zap.String("error", class.Error),
			)
			continue
		}
		s.logger.Info("Expiration sweep class finished",
			zap.String("item_type", class.ItemType.String()),
			zap.Int("batches_marked", class.BatchesMarked),
			zap.Int("batches_deducted", class.BatchesDeducted),
			zap.Int("batches_alerted", class.BatchesAlerted),
			zap.String("total_deducted", class.TotalDeducted.String()),
		)
	}
}
