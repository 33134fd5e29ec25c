package pressapi

import (
	"context"

	"github.com/imroc/req/v3"
)

const (
	v1State = "/api/v1/state/{repo}"
)

// StateAPI is the wire client for the remote state store: one JSON document
// per repository, guarded by a version token via If-Match.
type StateAPI struct {
	client *req.Client
}

func newStateAPI(client *req.Client) *StateAPI {
	return &StateAPI{
		client: client,
	}
}

// Get retrieves the state document for a repository. ErrStateNotFound is an
// expected outcome on a first run.
func (s *StateAPI) Get(ctx context.Context, repoID string) (apiResp *StateDocument, err error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("repo", repoID).
		SetSuccessResult(&apiResp).
		Get(v1State)

	if err := storeError(resp, err, "state get"); err != nil {
		return nil, err
	}

	return apiResp, nil
}

// Put writes the state document conditionally on its version token. A stale
// token yields ErrStateConflict instead of a silent overwrite. An empty
// version means first write; the server rejects it if a document exists.
func (s *StateAPI) Put(ctx context.Context, doc *StateDocument) (apiResp *StateDocument, err error) {
	r := s.client.R().
		SetContext(ctx).
		SetPathParam("repo", doc.RepoID).
		SetBody(doc).
		SetSuccessResult(&apiResp)

	if doc.Version != "" {
		r.SetHeader(HeaderIfMatch, doc.Version)
	}

	resp, err := r.Put(v1State)

	if err := storeError(resp, err, "state put"); err != nil {
		return nil, err
	}

	return apiResp, nil
}
