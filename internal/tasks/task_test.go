package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	snapshots []TaskProgress
}

func (s *recordingSink) Progress(progress TaskProgress) {
	s.snapshots = append(s.snapshots, progress)
}

func newTask() *ScrapeTask {
	return NewScrapeTask("proc-1", []string{"golang"}, []string{"linkedin"}, 3, 5)
}

func TestTaskLifecycle(t *testing.T) {
	task := newTask()
	assert.Equal(t, TaskStatePending, task.State())

	assert.True(t, task.Start())
	assert.Equal(t, TaskStateRunning, task.State())

	assert.True(t, task.Complete(map[string]interface{}{"postings": 3}))
	assert.Equal(t, TaskStateCompleted, task.State())
	assert.Equal(t, 3, task.ResultSummary()["postings"])
}

func TestTaskInvalidTransitions(t *testing.T) {
	task := newTask()

	// Cannot complete or fail before running
	assert.False(t, task.Complete(nil))
	assert.False(t, task.Fail("boom"))
	assert.Equal(t, TaskStatePending, task.State())

	task.Start()
	assert.False(t, task.Start(), "double start rejected")

	task.Complete(nil)
	assert.False(t, task.Cancel(), "terminal state is final")
	assert.Equal(t, TaskStateCompleted, task.State())
}

func TestTaskFailureAndRetries(t *testing.T) {
	task := newTask()

	for i := 1; i <= 3; i++ {
		task.Start()
		assert.True(t, task.Fail("source timeout"), "retry %d allowed", i)
		assert.Equal(t, TaskStateFailed, task.State())
		assert.Equal(t, i, task.RetryCount())
		assert.Equal(t, "source timeout", task.ErrorMessage())
		require.True(t, task.ResetForRetry())
	}

	// Retries exhausted; the task stays failed from here on
	task.Start()
	assert.False(t, task.Fail("source timeout"))
	assert.Equal(t, 3, task.RetryCount())
	assert.False(t, task.ResetForRetry(), "reset refused once retries are spent")
	assert.Equal(t, TaskStateFailed, task.State())
	assert.False(t, task.Start())
}

func TestTaskCancel(t *testing.T) {
	pending := newTask()
	assert.True(t, pending.Cancel())
	assert.Equal(t, TaskStateCancelled, pending.State())

	running := newTask()
	running.Start()
	assert.True(t, running.Cancel())
	assert.Equal(t, TaskStateCancelled, running.State())
}

func TestTaskProgressInterval(t *testing.T) {
	sink := &recordingSink{}
	task := newTask()
	task.SetProgressSink(sink)
	task.Start()

	for i := 0; i < 12; i++ {
		task.RecordItem(i%3 != 0)
	}

	// Snapshots at items 5 and 10
	require.Len(t, sink.snapshots, 2)
	assert.Equal(t, 5, sink.snapshots[0].ItemsProcessed)
	assert.Equal(t, 10, sink.snapshots[1].ItemsProcessed)

	final := task.Snapshot()
	assert.Equal(t, 12, final.ItemsProcessed)
	assert.Equal(t, 8, final.ItemsSucceeded)
	assert.Equal(t, 4, final.ItemsFailed)
}

func TestInMemoryTaskStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTaskStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	result := &TaskResult{ProcessID: "p1", Status: "ACCEPTED", CreatedAt: time.Now()}
	require.NoError(t, store.Store(ctx, result))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, result, got)

	result.Status = "SUCCESS"
	require.NoError(t, store.Update(ctx, result))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, store.Delete(ctx, "p1"))
	assert.ErrorIs(t, store.Delete(ctx, "p1"), ErrTaskNotFound)
}

func TestInMemoryTaskStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryTaskStore()

	old := &TaskResult{ProcessID: "old", CreatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := &TaskResult{ProcessID: "fresh", CreatedAt: time.Now()}
	require.NoError(t, store.Store(ctx, old))
	require.NoError(t, store.Store(ctx, fresh))

	require.NoError(t, store.Cleanup(ctx, 24*time.Hour))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}
