package statestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/pressgang/pressgang/internal/pressapi"
)

// RemoteStore keeps repository state on the publishing service itself.
type RemoteStore struct {
	api *pressapi.StateAPI
}

func NewRemoteStore(api *pressapi.StateAPI) *RemoteStore {
	return &RemoteStore{
		api: api,
	}
}

var _ Store = (*RemoteStore)(nil)

func (r *RemoteStore) Retrieve(ctx context.Context, repoID string) (*RepositoryState, error) {
	doc, err := r.api.Get(ctx, repoID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return fromDocument(doc), nil
}

func (r *RemoteStore) Persist(ctx context.Context, state *RepositoryState) (*RepositoryState, error) {
	doc, err := r.api.Put(ctx, toDocument(state))
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return fromDocument(doc), nil
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, pressapi.ErrStateNotFound):
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	case errors.Is(err, pressapi.ErrStateConflict):
		return fmt.Errorf("%v: %w", err, ErrConflict)
	default:
		return fmt.Errorf("%v: %w", err, ErrUnavailable)
	}
}

func fromDocument(doc *pressapi.StateDocument) *RepositoryState {
	records := make([]Record, len(doc.Records))
	for i, r := range doc.Records {
		records[i] = Record{
			Path:        r.Path,
			ContentHash: r.ContentHash,
			RemoteID:    r.RemoteID,
			RemoteURL:   r.RemoteURL,
		}
	}
	return &RepositoryState{
		RepoID:    doc.RepoID,
		RepoName:  doc.RepoName,
		Records:   records,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		Version:   doc.Version,
	}
}

func toDocument(state *RepositoryState) *pressapi.StateDocument {
	records := make([]pressapi.StateRecord, len(state.Records))
	for i, r := range state.Records {
		records[i] = pressapi.StateRecord{
			Path:        r.Path,
			ContentHash: r.ContentHash,
			RemoteID:    r.RemoteID,
			RemoteURL:   r.RemoteURL,
		}
	}
	return &pressapi.StateDocument{
		RepoID:    state.RepoID,
		RepoName:  state.RepoName,
		Records:   records,
		CreatedAt: state.CreatedAt,
		UpdatedAt: state.UpdatedAt,
		Version:   state.Version,
	}
}
