package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"jobscout/internal/logging/types"
)

// ErrorHandler routes adapter write failures to a fallback adapter and
// retries transient operations with backoff. Stderr is the last resort so a
// broken adapter never takes down logging entirely.
type ErrorHandler struct {
	maxRetries int
	retryDelay time.Duration
	fallback   types.LogAdapter
	mu         sync.RWMutex
}

// NewErrorHandler creates an error handler with the given retry budget
func NewErrorHandler(maxRetries int, retryDelay time.Duration) *ErrorHandler {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	return &ErrorHandler{
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// SetFallback registers the adapter that receives entries a primary adapter
// failed to write.
func (h *ErrorHandler) SetFallback(adapter types.LogAdapter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fallback = adapter
}

// HandleError delivers the failed entry through the fallback adapter, or to
// stderr when no fallback exists or the fallback fails too.
func (h *ErrorHandler) HandleError(err error, adapterName string, entry *types.LogEntry) {
	h.mu.RLock()
	fallback := h.fallback
	h.mu.RUnlock()

	if fallback != nil && fallback.Name() != adapterName {
		if fallbackErr := fallback.Write(entry); fallbackErr == nil {
			return
		}
	}
	fmt.Fprintf(os.Stderr, "logging adapter %s error: %v\n", adapterName, err)
}

// RetryWithBackoff runs the operation up to the retry budget, doubling the
// delay between attempts.
func (h *ErrorHandler) RetryWithBackoff(operation func() error) error {
	var lastErr error
	delay := h.retryDelay

	for i := 0; i < h.maxRetries; i++ {
		if err := operation(); err != nil {
			lastErr = err
			if i < h.maxRetries-1 {
				time.Sleep(delay)
				delay *= 2
			}
			continue
		}
		return nil
	}

	return fmt.Errorf("operation failed after %d attempts: %w", h.maxRetries, lastErr)
}
