package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/logging/types"
)

type recordingAdapter struct {
	name     string
	writeErr error
	entries  []*types.LogEntry
}

func (a *recordingAdapter) Write(entry *types.LogEntry) error {
	if a.writeErr != nil {
		return a.writeErr
	}
	a.entries = append(a.entries, entry)
	return nil
}

func (a *recordingAdapter) Close() error  { return nil }
func (a *recordingAdapter) Health() error { return nil }
func (a *recordingAdapter) Name() string  { return a.name }

func TestHandleErrorRoutesToFallback(t *testing.T) {
	fallback := &recordingAdapter{name: "fallback"}
	h := NewErrorHandler(3, time.Millisecond)
	h.SetFallback(fallback)

	entry := &types.LogEntry{Level: types.ErrorLevel, Message: "disk full"}
	h.HandleError(errors.New("write failed"), "file", entry)

	require.Len(t, fallback.entries, 1)
	assert.Equal(t, "disk full", fallback.entries[0].Message)
}

func TestHandleErrorSkipsFailingAdapterAsFallback(t *testing.T) {
	fallback := &recordingAdapter{name: "file"}
	h := NewErrorHandler(3, time.Millisecond)
	h.SetFallback(fallback)

	// The adapter that failed must not receive its own entry again
	entry := &types.LogEntry{Message: "loop"}
	h.HandleError(errors.New("write failed"), "file", entry)
	assert.Empty(t, fallback.entries)
}

func TestRetryWithBackoffEventualSuccess(t *testing.T) {
	h := NewErrorHandler(3, time.Millisecond)

	attempts := 0
	err := h.RetryWithBackoff(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoffExhausted(t *testing.T) {
	h := NewErrorHandler(2, time.Millisecond)

	attempts := 0
	err := h.RetryWithBackoff(func() error {
		attempts++
		return errors.New("still broken")
	})

	require.Error(t, err)
	assert.Equal(t, 2, attempts)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestLoggerWriteFailureFallsBack(t *testing.T) {
	logger := NewMultiLogger()
	broken := &recordingAdapter{name: "broken", writeErr: errors.New("no space")}
	fallback := &recordingAdapter{name: "stdout"}

	require.NoError(t, logger.AddAdapter(broken))
	logger.SetErrorFallback(fallback)

	logger.Info("still delivered")

	require.Len(t, fallback.entries, 1)
	assert.Equal(t, "still delivered", fallback.entries[0].Message)
}
