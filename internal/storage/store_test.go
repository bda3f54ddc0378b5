package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/pkg/models"
)

func enriched(title, company, url string) models.EnrichedPosting {
	return models.EnrichedPosting{
		RawPosting: models.RawPosting{
			Source:  "linkedin",
			Title:   title,
			Company: company,
			URL:     url,
		},
	}
}

func TestMemoryStoreSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPostingStore()

	p := enriched("Backend Engineer", "Acme", "https://example.com/j/1")

	id1, err := store.Save(ctx, p)
	require.NoError(t, err)
	id2, err := store.Save(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "same posting keeps its ID")

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStoreGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPostingStore()

	id, err := store.Save(ctx, enriched("Backend Engineer", "Acme", "https://example.com/j/1"))
	require.NoError(t, err)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "https://example.com/j/1", got.JobURL)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrPostingNotFound)
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPostingStore()

	urls := []string{
		"https://example.com/j/1",
		"https://example.com/j/2",
		"https://example.com/j/3",
	}
	for i, url := range urls {
		_, err := store.Save(ctx, enriched("Backend Engineer", "Acme", url))
		require.NoError(t, err)
		if i < len(urls)-1 {
			time.Sleep(2 * time.Millisecond)
		}
	}

	postings, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, postings, 3)
	assert.Equal(t, "https://example.com/j/3", postings[0].JobURL, "most recent first")
	assert.Equal(t, "https://example.com/j/1", postings[2].JobURL)

	postings, err = store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, "https://example.com/j/3", postings[0].JobURL)
	assert.Equal(t, "https://example.com/j/2", postings[1].JobURL)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPostingStore()

	id, err := store.Save(ctx, enriched("Backend Engineer", "Acme", "https://example.com/j/1"))
	require.NoError(t, err)

	// Nothing is old enough yet
	removed, err := store.Sweep(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	// Zero max age expires everything saved before now
	time.Sleep(5 * time.Millisecond)
	removed, err = store.Sweep(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrPostingNotFound)
}
