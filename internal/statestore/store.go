// Package statestore persists the mapping between local paths and remote
// posts, one state document per repository, guarded by an opaque version
// token so concurrent runs cannot overwrite each other.
package statestore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no state exists for the repository yet. Expected on
	// a first run; the orchestrator synthesizes an empty state.
	ErrNotFound = errors.New("statestore: repository state not found")

	// ErrConflict means the stored version advanced since retrieval.
	ErrConflict = errors.New("statestore: version conflict")

	// ErrUnavailable covers transport/backend failures. Fatal for the run.
	ErrUnavailable = errors.New("statestore: store unavailable")
)

// Store is the state store client contract. Persist writes conditionally on
// the state's version token and returns the state with a refreshed token.
type Store interface {
	Retrieve(ctx context.Context, repoID string) (*RepositoryState, error)
	Persist(ctx context.Context, state *RepositoryState) (*RepositoryState, error)
}
