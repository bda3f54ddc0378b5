package tasks

import (
	"sync"
	"time"
)

// TaskState is the lifecycle state of a scrape task
type TaskState string

const (
	TaskStatePending   TaskState = "pending"
	TaskStateRunning   TaskState = "running"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
	TaskStateCancelled TaskState = "cancelled"
)

// TaskProgress is a point-in-time snapshot of task counters
type TaskProgress struct {
	TaskID         string    `json:"task_id"`
	State          TaskState `json:"state"`
	ItemsProcessed int       `json:"items_processed"`
	ItemsSucceeded int       `json:"items_succeeded"`
	ItemsFailed    int       `json:"items_failed"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProgressSink receives progress snapshots while a task runs
type ProgressSink interface {
	Progress(progress TaskProgress)
}

// ScrapeTask tracks one scrape run through its lifecycle. Counters are
// safe for concurrent update; a snapshot is pushed to the sink every
// progressEvery processed items.
type ScrapeTask struct {
	ID       string
	Keywords []string
	Sources  []string

	mu             sync.Mutex
	state          TaskState
	itemsProcessed int
	itemsSucceeded int
	itemsFailed    int
	retryCount     int
	maxRetries     int
	retriesSpent   bool
	progressEvery  int
	errorMessage   string
	resultSummary  map[string]interface{}
	startedAt      *time.Time
	completedAt    *time.Time
	createdAt      time.Time
	sink           ProgressSink
}

// NewScrapeTask creates a pending task
func NewScrapeTask(id string, keywords, sources []string, maxRetries, progressEvery int) *ScrapeTask {
	if progressEvery <= 0 {
		progressEvery = 5
	}
	return &ScrapeTask{
		ID:            id,
		Keywords:      keywords,
		Sources:       sources,
		state:         TaskStatePending,
		maxRetries:    maxRetries,
		progressEvery: progressEvery,
		createdAt:     time.Now(),
	}
}

// SetProgressSink registers the sink before the task starts
func (t *ScrapeTask) SetProgressSink(sink ProgressSink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sink = sink
}

// Start moves a pending task to running. Any other state is a no-op
// returning false.
func (t *ScrapeTask) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TaskStatePending {
		return false
	}
	now := time.Now()
	t.state = TaskStateRunning
	t.startedAt = &now
	return true
}

// RecordItem counts one processed posting and emits a progress snapshot on
// the configured interval.
func (t *ScrapeTask) RecordItem(succeeded bool) {
	t.mu.Lock()

	t.itemsProcessed++
	if succeeded {
		t.itemsSucceeded++
	} else {
		t.itemsFailed++
	}

	var snapshot *TaskProgress
	if t.sink != nil && t.itemsProcessed%t.progressEvery == 0 {
		s := t.snapshotLocked()
		snapshot = &s
	}
	sink := t.sink
	t.mu.Unlock()

	if snapshot != nil {
		sink.Progress(*snapshot)
	}
}

// Complete moves a running task to completed with a result summary
func (t *ScrapeTask) Complete(summary map[string]interface{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TaskStateRunning {
		return false
	}
	now := time.Now()
	t.state = TaskStateCompleted
	t.completedAt = &now
	t.resultSummary = summary
	return true
}

// Fail moves a running task to failed, recording the error and bumping the
// retry counter. The return value reports whether a retry is still allowed.
func (t *ScrapeTask) Fail(errorMessage string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TaskStateRunning {
		return false
	}
	now := time.Now()
	t.state = TaskStateFailed
	t.completedAt = &now
	t.errorMessage = errorMessage
	if t.retryCount < t.maxRetries {
		t.retryCount++
		return true
	}
	t.retriesSpent = true
	return false
}

// Cancel aborts a pending or running task. Terminal states are left alone.
func (t *ScrapeTask) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TaskStatePending && t.state != TaskStateRunning {
		return false
	}
	now := time.Now()
	t.state = TaskStateCancelled
	t.completedAt = &now
	return true
}

// ResetForRetry returns a failed task to pending so it can run again.
// Refused once the retry budget is spent.
func (t *ScrapeTask) ResetForRetry() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TaskStateFailed || t.retriesSpent {
		return false
	}
	t.state = TaskStatePending
	t.startedAt = nil
	t.completedAt = nil
	t.errorMessage = ""
	return true
}

// State returns the current lifecycle state
func (t *ScrapeTask) State() TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// RetryCount returns how many retries have been consumed
func (t *ScrapeTask) RetryCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.retryCount
}

// ErrorMessage returns the recorded failure message, empty unless failed
func (t *ScrapeTask) ErrorMessage() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errorMessage
}

// ResultSummary returns the summary recorded at completion
func (t *ScrapeTask) ResultSummary() map[string]interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resultSummary
}

// Snapshot returns the current counters
func (t *ScrapeTask) Snapshot() TaskProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *ScrapeTask) snapshotLocked() TaskProgress {
	return TaskProgress{
		TaskID:         t.ID,
		State:          t.state,
		ItemsProcessed: t.itemsProcessed,
		ItemsSucceeded: t.itemsSucceeded,
		ItemsFailed:    t.itemsFailed,
		UpdatedAt:      time.Now(),
	}
}

// Duration returns how long the task ran, zero until it has both started
// and finished.
func (t *ScrapeTask) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.startedAt == nil || t.completedAt == nil {
		return 0
	}
	return t.completedAt.Sub(*t.startedAt)
}
