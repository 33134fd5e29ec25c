package pressapi

import "time"

// StateRecord is one durable path→post mapping entry on the wire.
type StateRecord struct {
	Path        string `json:"path"`
	ContentHash string `json:"content_hash"`
	RemoteID    string `json:"remote_id"`
	RemoteURL   string `json:"remote_url"`
}

// StateDocument is the per-repository state document on the wire. Version is
// the opaque optimistic-concurrency token; the server refreshes it on every
// successful Put.
type StateDocument struct {
	RepoID    string        `json:"repo_id"`
	RepoName  string        `json:"repo_name"`
	Records   []StateRecord `json:"records"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Version   string        `json:"version"`
}
