package statestore

import (
	"time"
)

// Record is one durable mapping entry: the remote identity of a path plus
// the content hash it was last published at. At most one Record per path.
type Record struct {
	Path        string `json:"path" db:"path"`
	ContentHash string `json:"content_hash" db:"content_hash"`
	RemoteID    string `json:"remote_id" db:"remote_id"`
	RemoteURL   string `json:"remote_url" db:"remote_url"`
}

// RepositoryState is the full persisted mapping for one repository. Version
// is an opaque token owned by the store; an empty Version marks a state that
// has never been persisted.
type RepositoryState struct {
	RepoID    string
	RepoName  string
	Records   []Record
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   string
}

// NewRepositoryState synthesizes an empty state for a repository's first run.
func NewRepositoryState(repoID, repoName string) *RepositoryState {
	now := time.Now().UTC()
	return &RepositoryState{
		RepoID:    repoID,
		RepoName:  repoName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lookup returns the record for path, if any.
func (s *RepositoryState) Lookup(path string) (Record, bool) {
	for _, r := range s.Records {
		if r.Path == path {
			return r, true
		}
	}
	return Record{}, false
}

// Index builds a path→record lookup map.
func (s *RepositoryState) Index() map[string]Record {
	idx := make(map[string]Record, len(s.Records))
	for _, r := range s.Records {
		idx[r.Path] = r
	}
	return idx
}

// Put replaces the record for rec.Path, or appends it.
func (s *RepositoryState) Put(rec Record) {
	for i, r := range s.Records {
		if r.Path == rec.Path {
			s.Records[i] = rec
			return
		}
	}
	s.Records = append(s.Records, rec)
}

// Clone returns a deep copy so merges never mutate the retrieved state.
func (s *RepositoryState) Clone() *RepositoryState {
	out := *s
	out.Records = make([]Record, len(s.Records))
	copy(out.Records, s.Records)
	return &out
}
