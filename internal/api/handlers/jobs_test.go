package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/storage"
	"jobscout/pkg/models"
)

func seededPostingStore(t *testing.T) (storage.PostingStore, string) {
	t.Helper()
	store := storage.NewMemoryPostingStore()
	id, err := store.Save(context.Background(), models.EnrichedPosting{
		RawPosting: models.RawPosting{
			Source:  "linkedin",
			Title:   "Backend Engineer",
			Company: "Acme",
			URL:     "https://example.com/j/1",
		},
	})
	require.NoError(t, err)
	return store, id
}

func TestJobListHandler(t *testing.T) {
	store, _ := seededPostingStore(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, JobListHandler(store)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.JobListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, int64(1), body.Total)
	require.Len(t, body.Jobs, 1)
	assert.Equal(t, "Backend Engineer", body.Jobs[0].Title)
}

func TestJobListHandlerInvalidLimit(t *testing.T) {
	store, _ := seededPostingStore(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs?limit=nope", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, JobListHandler(store)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobGetHandler(t *testing.T) {
	store, id := seededPostingStore(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, JobGetHandler(store)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var posting models.JobPosting
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posting))
	assert.Equal(t, "Acme", posting.Company)
}

func TestJobGetHandlerNotFound(t *testing.T) {
	store, _ := seededPostingStore(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	require.NoError(t, JobGetHandler(store)(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
