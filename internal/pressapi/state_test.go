package pressapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Get(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/state/acme-blog", r.URL.Path)
		writeJSON(w, http.StatusOK, StateDocument{
			RepoID:   "acme-blog",
			RepoName: "ACME Blog",
			Records: []StateRecord{
				{Path: "a.md", ContentHash: "h1", RemoteID: "p-1", RemoteURL: "u1"},
			},
			CreatedAt: now,
			UpdatedAt: now,
			Version:   "v-abc",
		})
	}))

	doc, err := client.State.Get(context.Background(), "acme-blog")
	require.NoError(t, err)
	assert.Equal(t, "acme-blog", doc.RepoID)
	assert.Equal(t, "v-abc", doc.Version)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "p-1", doc.Records[0].RemoteID)
}

func TestState_Get_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, APIError{Code: CodeStateNotFound, Message: "no state"})
	}))

	_, err := client.State.Get(context.Background(), "acme-blog")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestState_Put_SendsIfMatchAndReturnsFreshVersion(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "v-old", r.Header.Get("If-Match"))

		var doc StateDocument
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		doc.Version = "v-new"
		doc.UpdatedAt = time.Now().UTC()
		writeJSON(w, http.StatusOK, doc)
	}))

	out, err := client.State.Put(context.Background(), &StateDocument{
		RepoID:  "acme-blog",
		Version: "v-old",
		Records: []StateRecord{{Path: "a.md", ContentHash: "h", RemoteID: "p-1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "v-new", out.Version)
}

func TestState_Put_FirstWriteOmitsIfMatch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["If-Match"]
		require.False(t, present)
		writeJSON(w, http.StatusCreated, StateDocument{RepoID: "acme-blog", Version: "v-1"})
	}))

	out, err := client.State.Put(context.Background(), &StateDocument{RepoID: "acme-blog"})
	require.NoError(t, err)
	assert.Equal(t, "v-1", out.Version)
}

func TestState_Put_Conflict(t *testing.T) {
	for _, status := range []int{http.StatusConflict, http.StatusPreconditionFailed} {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, status, APIError{Code: CodeStateConflict, Message: "version mismatch"})
		}))

		_, err := client.State.Put(context.Background(), &StateDocument{RepoID: "acme-blog", Version: "stale"})
		assert.ErrorIs(t, err, ErrStateConflict)
	}
}

func TestState_Unavailable(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "boom"})
		}))

		_, err := client.State.Get(context.Background(), "acme-blog")
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := New(srv.URL, "")
		_, err := client.State.Get(context.Background(), "acme-blog")
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}
