package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// Task manager configuration constants
const (
	DefaultMaxWorkers   = 10
	DefaultMaxQueueSize = 100

	MinWorkers   = 1
	MinQueueSize = 1

	MaxWorkers   = 1000
	MaxQueueSize = 10000
)

// ScrapeRunner executes one scrape run against the sources named in the
// request, reporting per-item progress on the task.
type ScrapeRunner interface {
	RunScrape(ctx context.Context, request models.ScrapeRequest, task *ScrapeTask) (*models.ScrapeResult, error)
}

// TaskManager defines the interface for managing background scrape tasks
type TaskManager interface {
	// Start starts the task manager
	Start(ctx context.Context) error

	// Stop stops the task manager gracefully
	Stop(ctx context.Context) error

	// SubmitScrapeTask submits a scrape task for background processing
	SubmitScrapeTask(ctx context.Context, processID string, request models.ScrapeRequest, runner ScrapeRunner) error

	// GetTaskResult retrieves the result of a task by process ID
	GetTaskResult(ctx context.Context, processID string) (*TaskResult, error)

	// GetTaskStatus retrieves the status of a task by process ID
	GetTaskStatus(ctx context.Context, processID string) (models.AsyncStatus, error)

	// ListTasks lists all active tasks (for monitoring)
	ListTasks(ctx context.Context) ([]*TaskResult, error)

	// IsHealthy checks if the task manager is healthy
	IsHealthy() bool
}

// TaskManagerImpl implements the TaskManager interface
type TaskManagerImpl struct {
	config       *config.Config
	store        TaskStore
	logger       *TaskCompletionLogger
	appLogger    types.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.RWMutex
	running      bool
	taskChan     chan *TaskExecution
	maxWorkers   int
	maxQueueSize int
	publisher    ProgressSink
}

// TaskExecution represents a task execution context
type TaskExecution struct {
	ProcessID   string
	Context     context.Context
	Cancel      context.CancelFunc
	ExecuteFunc func(context.Context) (*TaskResult, error)
}

// validateTaskManagerConfig validates and returns safe configuration values
func validateTaskManagerConfig(cfg *config.Config) (maxWorkers, maxQueueSize int, err error) {
	maxWorkers = cfg.Workers.PoolSize
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	} else if maxWorkers < MinWorkers {
		return 0, 0, fmt.Errorf("worker pool size (%d) is below minimum (%d)", maxWorkers, MinWorkers)
	} else if maxWorkers > MaxWorkers {
		return 0, 0, fmt.Errorf("worker pool size (%d) exceeds maximum (%d)", maxWorkers, MaxWorkers)
	}

	maxQueueSize = cfg.Workers.QueueSize
	if maxQueueSize <= 0 {
		maxQueueSize = DefaultMaxQueueSize
	} else if maxQueueSize < MinQueueSize {
		return 0, 0, fmt.Errorf("queue size (%d) is below minimum (%d)", maxQueueSize, MinQueueSize)
	} else if maxQueueSize > MaxQueueSize {
		return 0, 0, fmt.Errorf("queue size (%d) exceeds maximum (%d)", maxQueueSize, MaxQueueSize)
	}

	return maxWorkers, maxQueueSize, nil
}

// NewTaskManager creates a new task manager. A nil store falls back to the
// in-memory implementation.
func NewTaskManager(cfg *config.Config, store TaskStore) *TaskManagerImpl {
	logger := logging.GetGlobalLogger()

	maxWorkers, maxQueueSize, err := validateTaskManagerConfig(cfg)
	if err != nil {
		logger.Warn("Task manager configuration validation failed, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		maxWorkers = DefaultMaxWorkers
		maxQueueSize = DefaultMaxQueueSize
	}

	if store == nil {
		store = NewInMemoryTaskStore()
	}

	logger.Info("Task manager configuration initialized", map[string]interface{}{
		"max_workers":    maxWorkers,
		"max_queue_size": maxQueueSize,
	})

	return &TaskManagerImpl{
		config:       cfg,
		store:        store,
		logger:       NewTaskCompletionLogger(),
		appLogger:    logger,
		maxWorkers:   maxWorkers,
		maxQueueSize: maxQueueSize,
		taskChan:     make(chan *TaskExecution, maxQueueSize),
	}
}

// SetProgressPublisher attaches an external sink that receives every progress
// snapshot alongside the built-in log sink. Must be called before Start.
func (tm *TaskManagerImpl) SetProgressPublisher(sink ProgressSink) {
	tm.publisher = sink
}

// Start starts the task manager
func (tm *TaskManagerImpl) Start(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.running {
		return fmt.Errorf("task manager already running")
	}

	tm.ctx, tm.cancel = context.WithCancel(ctx)
	tm.running = true

	for i := 0; i < tm.maxWorkers; i++ {
		tm.wg.Add(1)
		go tm.worker(i)
	}

	tm.wg.Add(1)
	go tm.cleanupRoutine()

	tm.appLogger.Info("Task manager started", map[string]interface{}{
		"max_workers": tm.maxWorkers,
	})
	return nil
}

// Stop stops the task manager gracefully
func (tm *TaskManagerImpl) Stop(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if !tm.running {
		return nil
	}

	tm.appLogger.Info("Stopping task manager...", map[string]interface{}{})

	tm.cancel()
	close(tm.taskChan)

	done := make(chan struct{})
	go func() {
		tm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		tm.appLogger.Info("Task manager stopped gracefully", map[string]interface{}{})
	case <-ctx.Done():
		tm.appLogger.Warn("Task manager shutdown timed out", map[string]interface{}{})
	}

	tm.running = false
	return nil
}

// SubmitScrapeTask submits a scrape task for background processing
func (tm *TaskManagerImpl) SubmitScrapeTask(ctx context.Context, processID string, request models.ScrapeRequest, runner ScrapeRunner) error {
	if !tm.IsHealthy() {
		return fmt.Errorf("task manager is not healthy")
	}

	result := &TaskResult{
		ProcessID: processID,
		Status:    models.AsyncStatusAccepted,
		State:     TaskStatePending,
		CreatedAt: time.Now(),
		Metadata: map[string]interface{}{
			"keywords":    request.Keywords,
			"sources":     request.Sources,
			"time_window": request.TimeWindow,
		},
	}

	if err := tm.store.Store(ctx, result); err != nil {
		return fmt.Errorf("failed to store task result: %w", err)
	}

	tm.logger.LogTaskAccepted(processID)

	// Derived context isolates the task from the submitting request
	taskCtx, cancelFunc := context.WithCancel(tm.ctx)
	execution := &TaskExecution{
		ProcessID: processID,
		Context:   taskCtx,
		Cancel:    cancelFunc,
		ExecuteFunc: func(execCtx context.Context) (*TaskResult, error) {
			return tm.executeScrapeTask(execCtx, processID, request, runner)
		},
	}

	select {
	case tm.taskChan <- execution:
		return nil
	case <-ctx.Done():
		cancelFunc()
		return ctx.Err()
	default:
		cancelFunc()
		return fmt.Errorf("task queue is full")
	}
}

// GetTaskResult retrieves the result of a task by process ID
func (tm *TaskManagerImpl) GetTaskResult(ctx context.Context, processID string) (*TaskResult, error) {
	return tm.store.Get(ctx, processID)
}

// GetTaskStatus retrieves the status of a task by process ID
func (tm *TaskManagerImpl) GetTaskStatus(ctx context.Context, processID string) (models.AsyncStatus, error) {
	result, err := tm.store.Get(ctx, processID)
	if err != nil {
		return "", err
	}
	return result.Status, nil
}

// ListTasks lists all active tasks (for monitoring)
func (tm *TaskManagerImpl) ListTasks(ctx context.Context) ([]*TaskResult, error) {
	return tm.store.List(ctx)
}

// IsHealthy checks if the task manager is healthy
func (tm *TaskManagerImpl) IsHealthy() bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.running && tm.ctx.Err() == nil
}

// worker processes tasks from the task channel
func (tm *TaskManagerImpl) worker(workerID int) {
	defer tm.wg.Done()

	tm.appLogger.Info("Task worker started", map[string]interface{}{
		"worker_id": workerID,
	})

	for {
		select {
		case <-tm.ctx.Done():
			tm.appLogger.Info("Task worker stopping", map[string]interface{}{
				"worker_id": workerID,
			})
			return
		case task, ok := <-tm.taskChan:
			if !ok {
				tm.appLogger.Info("Task channel closed, worker stopping", map[string]interface{}{
					"worker_id": workerID,
				})
				return
			}

			tm.processTask(workerID, task)
		}
	}
}

// processTask processes a single task
func (tm *TaskManagerImpl) processTask(workerID int, task *TaskExecution) {
	startTime := time.Now()

	tm.appLogger.Info("Processing task", map[string]interface{}{
		"worker_id":  workerID,
		"process_id": task.ProcessID,
	})

	if err := tm.markProcessing(task.ProcessID); err != nil {
		tm.appLogger.Error("Failed to update task status to processing", map[string]interface{}{
			"error": err.Error(),
		})
	}

	tm.logger.LogTaskStart(task.ProcessID)

	result, err := task.ExecuteFunc(task.Context)
	processingTime := time.Since(startTime)

	if err != nil {
		tm.appLogger.Error("Task execution failed", map[string]interface{}{
			"worker_id":       workerID,
			"process_id":      task.ProcessID,
			"processing_time": processingTime,
			"error":           err.Error(),
		})

		// Preserve the original CreatedAt on the stored record
		existingResult, getErr := tm.store.Get(task.Context, task.ProcessID)
		if getErr != nil {
			tm.appLogger.Error("Failed to retrieve existing task result for failure update", map[string]interface{}{
				"error": getErr.Error(),
			})
			result = &TaskResult{
				ProcessID:      task.ProcessID,
				Status:         models.AsyncStatusFailure,
				State:          TaskStateFailed,
				Error:          err.Error(),
				CreatedAt:      time.Now(),
				ProcessingTime: &processingTime,
			}
		} else {
			existingResult.Status = models.AsyncStatusFailure
			existingResult.State = TaskStateFailed
			existingResult.Error = err.Error()
			existingResult.ProcessingTime = &processingTime
			result = existingResult
		}

		tm.logger.LogTaskError(task.ProcessID, err)
	} else {
		tm.appLogger.Info("Task execution completed successfully", map[string]interface{}{
			"worker_id":       workerID,
			"process_id":      task.ProcessID,
			"processing_time": processingTime,
		})

		result.Status = models.AsyncStatusSuccess
		result.State = TaskStateCompleted
		result.ProcessingTime = &processingTime
		completedAt := time.Now()
		result.CompletedAt = &completedAt

		tm.logger.LogTaskSuccess(task.ProcessID, processingTime)
	}

	if err := tm.store.Update(task.Context, result); err != nil {
		tm.appLogger.Error("Failed to store task result", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := tm.logger.LogTaskCompletion(result); err != nil {
		tm.appLogger.Error("Failed to log task completion", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Cancel the task context to prevent context leaks
	if task.Cancel != nil {
		task.Cancel()
	}
}

// markProcessing flips the stored record to PROCESSING
func (tm *TaskManagerImpl) markProcessing(processID string) error {
	result, err := tm.store.Get(context.Background(), processID)
	if err != nil {
		return err
	}

	result.Status = models.AsyncStatusProcessing
	result.State = TaskStateRunning
	return tm.store.Update(context.Background(), result)
}

// cleanupRoutine periodically cleans up old task results
func (tm *TaskManagerImpl) cleanupRoutine() {
	defer tm.wg.Done()

	interval := tm.config.Tasks.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case <-ticker.C:
			maxAge := tm.config.Tasks.MaxTaskAge
			if maxAge <= 0 {
				maxAge = 24 * time.Hour
			}
			if err := tm.store.Cleanup(context.Background(), maxAge); err != nil {
				tm.appLogger.Error("Failed to cleanup old task results", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// progressSink logs interval snapshots while the scrape runs
type progressSink struct {
	logger types.Logger
}

func (s *progressSink) Progress(progress TaskProgress) {
	s.logger.Info("Scrape task progress", map[string]interface{}{
		"process_id":      progress.TaskID,
		"items_processed": progress.ItemsProcessed,
		"items_succeeded": progress.ItemsSucceeded,
		"items_failed":    progress.ItemsFailed,
	})
}

// executeScrapeTask executes a scrape task in the background
func (tm *TaskManagerImpl) executeScrapeTask(ctx context.Context, processID string, request models.ScrapeRequest, runner ScrapeRunner) (*TaskResult, error) {
	// Retrieve the existing task result to preserve original CreatedAt
	existingResult, err := tm.store.Get(ctx, processID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve existing task result: %w", err)
	}

	task := NewScrapeTask(processID, request.Keywords, request.Sources, tm.config.Tasks.MaxRetries, tm.config.Tasks.ProgressEvery)
	sinks := []ProgressSink{&progressSink{logger: tm.appLogger}}
	if tm.publisher != nil {
		sinks = append(sinks, tm.publisher)
	}
	task.SetProgressSink(&fanoutSink{sinks: sinks})
	task.Start()

	scrapeResult, err := runner.RunScrape(ctx, request, task)
	if err != nil {
		task.Fail(err.Error())
		return nil, fmt.Errorf("scrape run failed: %w", err)
	}

	snapshot := task.Snapshot()
	task.Complete(map[string]interface{}{
		"postings":        len(scrapeResult.Postings),
		"items_processed": snapshot.ItemsProcessed,
		"items_succeeded": snapshot.ItemsSucceeded,
		"items_failed":    snapshot.ItemsFailed,
	})

	postings := make([]models.JobPosting, 0, len(scrapeResult.Postings))
	for _, p := range scrapeResult.Postings {
		postings = append(postings, utils.ToJobPosting(p, time.Now))
	}

	existingResult.Data = &models.AsyncScrapeCompletionData{
		Postings: postings,
		Sources:  scrapeResult.Sources,
	}
	existingResult.Metadata = map[string]interface{}{
		"keywords":        request.Keywords,
		"sources":         request.Sources,
		"time_window":     request.TimeWindow,
		"postings":        len(postings),
		"items_processed": snapshot.ItemsProcessed,
	}

	return existingResult, nil
}
