package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// TaskFunc runs one execution of a scheduled task and reports how many
// items it handled.
type TaskFunc func(ctx context.Context) (int, error)

// Bounds on how often the scheduler looks for due tasks.
const (
	minTick = 100 * time.Millisecond
	maxTick = time.Minute
)

// Scheduler manages background task execution.
// It is a pure core service with no external control API.
type Scheduler struct {
	config   domain.SchedulerConfig
	store    driven.SchedulerStore
	registry driving.DocumentRegistry
	runners  map[string]TaskFunc

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	cancel  context.CancelFunc
	active  map[string]bool
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	registry driving.DocumentRegistry,
) *Scheduler {
	s := &Scheduler{
		config:   config,
		store:    store,
		registry: registry,
		runners:  make(map[string]TaskFunc),
		active:   make(map[string]bool),
	}
	s.runners[domain.TaskIDDocumentRefresh] = s.runDocumentRefresh
	return s
}

// Register installs the runner for a task ID, replacing any existing one.
func (s *Scheduler) Register(taskID string, fn TaskFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runners[taskID] = fn
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or ctx is cancelled. Running tasks see a context that Stop cancels.
// A stopped scheduler can be started again.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.running = true
	s.stopCh = make(chan struct{})
	s.cancel = cancel
	stopCh := s.stopCh
	s.mu.Unlock()

	if err := s.initialiseTasks(ctx); err != nil {
		logger.Warn("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx, stopCh)
}

// Stop shuts down the scheduler, cancels running tasks and waits for them
// to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()

	return nil
}

// release marks the scheduler stopped after its context ends, so that it
// can be started again.
func (s *Scheduler) release(stopCh chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running && s.stopCh == stopCh {
		s.running = false
		close(s.stopCh)
	}
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// initialiseTasks ensures all configured tasks exist in the store.
func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}
	if taskCfg := s.config.GetTaskConfig(domain.TaskIDDocumentRefresh); taskCfg.Enabled {
		if err := s.ensureTask(ctx, domain.TaskIDDocumentRefresh, "Document Refresh", taskCfg); err != nil {
			return err
		}
	}

	return nil
}

// ensureTask creates or updates a task in the store.
func (s *Scheduler) ensureTask(ctx context.Context, id, name string, cfg domain.TaskConfig) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	if task == nil {
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     name,
			Interval: cfg.Interval,
			Enabled:  cfg.Enabled,
			NextRun:  now.Add(cfg.Interval),
		}
	} else {
		if task.Interval != cfg.Interval {
			task.Interval = cfg.Interval
			task.NextRun = now.Add(cfg.Interval)
		}
		task.Enabled = cfg.Enabled
	}
	if cfg.RunOnStart {
		task.NextRun = now
	}

	return s.store.SaveTask(ctx, task)
}

// tick returns how often the loop checks for due tasks.
func (s *Scheduler) tick() time.Duration {
	d := s.config.MinInterval() / 10
	if d < minTick {
		d = minTick
	}
	if d > maxTick {
		d = maxTick
	}
	return d
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context, stopCh chan struct{}) error {
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(s.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			select {
			case <-stopCh:
				return nil
			default:
			}
			s.release(stopCh)
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Warn("scheduler: failed to list tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := &tasks[i]
		if !task.Enabled {
			continue
		}
		if task.NextRun.IsZero() || !task.NextRun.After(now) {
			s.runTask(ctx, task)
		}
	}
}

// runTask executes a single task. A task still running from a previous
// tick is skipped.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	s.mu.Lock()
	runner, known := s.runners[task.ID]
	if !known {
		s.mu.Unlock()
		logger.Warn("scheduler: unknown task ID: %s", task.ID)
		return
	}
	if s.active[task.ID] {
		s.mu.Unlock()
		logger.Debug("scheduler: task %s still running, skipping", task.ID)
		return
	}
	s.active[task.ID] = true
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.active, task.ID)
			s.mu.Unlock()
		}()

		result := &domain.TaskResult{
			TaskID:    task.ID,
			StartedAt: time.Now(),
		}

		var err error
		result.ItemsProcessed, err = runner(ctx)

		result.EndedAt = time.Now()
		if err != nil {
			result.Success = false
			result.Error = err.Error()
			task.LastError = err.Error()
		} else {
			result.Success = true
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		task.LastRun = result.StartedAt
		task.NextRun = result.EndedAt.Add(task.Interval)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			logger.Warn("scheduler: failed to save task %s: %v", task.ID, saveErr)
		}

		if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
			logger.Warn("scheduler: failed to record result for %s: %v", task.ID, recordErr)
		}

		// Keep the last 100 results per task.
		if pruneErr := s.store.PruneHistory(ctx, 100); pruneErr != nil {
			logger.Warn("scheduler: failed to prune history: %v", pruneErr)
		}
	}()
}

// runDocumentRefresh re-fetches the document list.
func (s *Scheduler) runDocumentRefresh(ctx context.Context) (int, error) {
	if s.registry == nil {
		return 0, nil
	}
	if err := s.registry.Refresh(ctx); err != nil {
		return 0, err
	}
	return len(s.registry.Documents()), nil
}
