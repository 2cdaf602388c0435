package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task is a unit of background work run on a schedule
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// TaskFunc adapts a function to the Task interface
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

func (t TaskFunc) Name() string                  { return t.TaskName }
func (t TaskFunc) Run(ctx context.Context) error { return t.Fn(ctx) }

// IntervalFunc returns the current interval for a repeating task.
// Re-evaluated after every run so interval changes take effect without
// a restart.
type IntervalFunc func() time.Duration

type cronEntry struct {
	spec       string
	task       Task
	runOnStart bool
}

type intervalEntry struct {
	task     Task
	interval IntervalFunc
}

// Scheduler runs registered maintenance tasks. Fixed-time tasks use
// cron expressions, repeating tasks use a re-evaluated interval.
type Scheduler struct {
	logger *zap.Logger

	cronEntries     []cronEntry
	intervalEntries []intervalEntry

	cron      *cron.Cron
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// New creates a new scheduler
func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: logger,
	}
}

// RegisterCron registers a task against a cron expression. When
// runOnStart is true the task also runs once immediately on Start.
func (s *Scheduler) RegisterCron(spec string, task Task, runOnStart bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cronEntries = append(s.cronEntries, cronEntry{spec: spec, task: task, runOnStart: runOnStart})
}

// RegisterInterval registers a task that repeats with a dynamic interval
func (s *Scheduler) RegisterInterval(task Task, interval IntervalFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intervalEntries = append(s.intervalEntries, intervalEntry{task: task, interval: interval})
}

// Start launches all registered tasks
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.cron = cron.New()
	for _, entry := range s.cronEntries {
		e := entry
		if _, err := s.cron.AddFunc(e.spec, func() { s.runTask(ctx, e.task) }); err != nil {
			cancel()
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
			return err
		}
		if e.runOnStart {
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.runTask(ctx, e.task)
			}()
		}
	}
	s.cron.Start()

	for _, entry := range s.intervalEntries {
		e := entry
		s.wg.Add(1)
		go s.intervalLoop(ctx, e)
	}

	s.logger.Info("scheduler started",
		zap.Int("cron_tasks", len(s.cronEntries)),
		zap.Int("interval_tasks", len(s.intervalEntries)),
	)

	return nil
}

// Stop gracefully stops the scheduler, waiting for running tasks
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
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
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) intervalLoop(ctx context.Context, e intervalEntry) {
	defer s.wg.Done()

	for {
		interval := e.interval()
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runTask(ctx, e.task)
		}
	}
}

func (s *Scheduler) runTask(ctx context.Context, task Task) {
	start := time.Now()
	if err := task.Run(ctx); err != nil {
		s.logger.Error("scheduled task failed",
			zap.String("task", task.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}
	s.logger.Debug("scheduled task completed",
		zap.String("task", task.Name()),
		zap.Duration("elapsed", time.Since(start)))
}
