package pressapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestPosts_Create(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/posts", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var params PostParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "posts/a.md", params.Path)
		assert.Equal(t, "Hello", params.Title)

		writeJSON(w, http.StatusCreated, PostResponse{RemoteID: "p-1", RemoteURL: "https://press.example.com/p/p-1"})
	}))

	resp, err := client.Posts.Create(context.Background(), &PostParams{
		Path:         "posts/a.md",
		Title:        "Hello",
		BodyMarkdown: "body\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "p-1", resp.RemoteID)
	assert.Equal(t, "https://press.example.com/p/p-1", resp.RemoteURL)
}

func TestPosts_Update(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/posts/p-9", r.URL.Path)
		writeJSON(w, http.StatusOK, PostResponse{RemoteID: "p-9", RemoteURL: "https://press.example.com/p/p-9"})
	}))

	resp, err := client.Posts.Update(context.Background(), "p-9", &PostParams{Path: "a.md", Title: "T", BodyMarkdown: "b"})
	require.NoError(t, err)
	assert.Equal(t, "p-9", resp.RemoteID)
}

func TestPosts_Update_RequiresRemoteID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := client.Posts.Update(context.Background(), "", &PostParams{})
	assert.Error(t, err)
}

func TestPosts_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
		kind   PublishErrorKind
	}{
		{"validation is permanent", http.StatusUnprocessableEntity, CodePostInvalid, PublishPermanent},
		{"auth is permanent", http.StatusUnauthorized, CodeAccessDenied, PublishPermanent},
		{"rate limit is transient", http.StatusTooManyRequests, CodeRateLimited, PublishTransient},
		{"server error is transient", http.StatusInternalServerError, CodeInternalError, PublishTransient},
		{"missing post is not-found", http.StatusNotFound, CodePostNotFound, PublishNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, APIError{Code: tc.code, Message: "nope"})
			}))

			_, err := client.Posts.Update(context.Background(), "p-1", &PostParams{})
			require.Error(t, err)

			var pe *PublishError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.kind, pe.Kind)
			assert.Equal(t, tc.code, pe.Code)
			assert.Equal(t, tc.status, pe.Status)
		})
	}
}

func TestPosts_TransportErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(srv.URL, "")
	_, err := client.Posts.Create(context.Background(), &PostParams{})
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestPublishErrorHelpers(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsRemoteNotFound(assert.AnError))
	assert.True(t, IsRemoteNotFound(&PublishError{Kind: PublishNotFound}))
}
