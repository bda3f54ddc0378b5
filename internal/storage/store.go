// Package storage persists discovered postings keyed by their stable ID so
// repeated runs overwrite rather than duplicate.
package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// ErrPostingNotFound is returned when no posting exists for an ID
var ErrPostingNotFound = errors.New("posting not found")

// PostingStore persists transport-form postings
type PostingStore interface {
	// Save stores the posting and returns its stable ID. Saving the same
	// posting twice overwrites in place.
	Save(ctx context.Context, posting models.EnrichedPosting) (string, error)

	// Get retrieves a stored posting by ID
	Get(ctx context.Context, id string) (*models.JobPosting, error)

	// List returns up to limit postings, most recently saved first
	List(ctx context.Context, limit int) ([]models.JobPosting, error)

	// Count returns the number of stored postings
	Count(ctx context.Context) (int64, error)

	// Sweep removes postings older than maxAge, returning how many went
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

type memoryEntry struct {
	posting models.JobPosting
	savedAt time.Time
}

// MemoryPostingStore is the in-memory PostingStore used when Redis is not
// configured.
type MemoryPostingStore struct {
	mu       sync.RWMutex
	postings map[string]memoryEntry
}

// NewMemoryPostingStore creates an empty in-memory posting store
func NewMemoryPostingStore() *MemoryPostingStore {
	return &MemoryPostingStore{
		postings: make(map[string]memoryEntry),
	}
}

func (s *MemoryPostingStore) Save(ctx context.Context, posting models.EnrichedPosting) (string, error) {
	transport := utils.ToJobPosting(posting, time.Now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.postings[transport.ID] = memoryEntry{posting: transport, savedAt: time.Now()}
	return transport.ID, nil
}

func (s *MemoryPostingStore) Get(ctx context.Context, id string) (*models.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.postings[id]
	if !exists {
		return nil, ErrPostingNotFound
	}
	posting := entry.posting
	return &posting, nil
}

func (s *MemoryPostingStore) List(ctx context.Context, limit int) ([]models.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]memoryEntry, 0, len(s.postings))
	for _, entry := range s.postings {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].savedAt.After(entries[j].savedAt)
	})

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	postings := make([]models.JobPosting, 0, len(entries))
	for _, entry := range entries {
		postings = append(postings, entry.posting)
	}
	return postings, nil
}

func (s *MemoryPostingStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.postings)), nil
}

func (s *MemoryPostingStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, entry := range s.postings {
		if entry.savedAt.Before(cutoff) {
			delete(s.postings, id)
			removed++
		}
	}
	return removed, nil
}
