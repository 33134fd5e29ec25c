package statestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pressgang/pressgang/internal/utils"
)

const schema = `
CREATE TABLE IF NOT EXISTS repo_state (
    repo_id TEXT PRIMARY KEY,
    repo_name TEXT NOT NULL,
    records TEXT NOT NULL, -- JSON array
    created_at TEXT NOT NULL, -- RFC3339
    updated_at TEXT NOT NULL, -- RFC3339
    version TEXT NOT NULL
);
`

type stateRow struct {
	RepoID    string `db:"repo_id"`
	RepoName  string `db:"repo_name"`
	Records   string `db:"records"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
	Version   string `db:"version"`
}

// SQLiteStore keeps repository state in a local sqlite file. It honors the
// same conditional-write contract as the remote store: a persist with a
// stale version token fails with ErrConflict.
type SQLiteStore struct {
	db     *sqlx.DB
	dbPath string
}

// NewSQLiteStore creates or opens the state database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := utils.EnsureParent(dbPath); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db at %s: %w", dbPath, err)
	}

	// single writer, WAL mode
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize state schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

var _ Store = (*SQLiteStore)(nil)

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Retrieve(ctx context.Context, repoID string) (*RepositoryState, error) {
	var row stateRow
	err := s.db.GetContext(ctx, &row, "SELECT repo_id, repo_name, records, created_at, updated_at, version FROM repo_state WHERE repo_id = ?", repoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repo %s: %w", repoID, ErrNotFound)
		}
		return nil, fmt.Errorf("query state for %s: %v: %w", repoID, err, ErrUnavailable)
	}

	return rowToState(&row)
}

func (s *SQLiteStore) Persist(ctx context.Context, state *RepositoryState) (*RepositoryState, error) {
	records, err := json.Marshal(state.Records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}

	out := state.Clone()
	out.UpdatedAt = time.Now().UTC()
	newVersion := uuid.NewString()

	if state.Version == "" {
		// first persist for this repository
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO repo_state (repo_id, repo_name, records, created_at, updated_at, version) VALUES (?, ?, ?, ?, ?, ?)",
			state.RepoID, state.RepoName, string(records),
			state.CreatedAt.Format(time.RFC3339), out.UpdatedAt.Format(time.RFC3339), newVersion,
		)
		if err != nil {
			// a competing first run already inserted the row
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("repo %s: %w", state.RepoID, ErrConflict)
			}
			return nil, fmt.Errorf("insert state for %s: %v: %w", state.RepoID, err, ErrUnavailable)
		}
		out.Version = newVersion
		return out, nil
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE repo_state SET repo_name = ?, records = ?, updated_at = ?, version = ? WHERE repo_id = ? AND version = ?",
		state.RepoName, string(records), out.UpdatedAt.Format(time.RFC3339), newVersion,
		state.RepoID, state.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("update state for %s: %v: %w", state.RepoID, err, ErrUnavailable)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update state for %s: %v: %w", state.RepoID, err, ErrUnavailable)
	}
	if affected == 0 {
		// version advanced under us, or the row vanished
		return nil, fmt.Errorf("repo %s: %w", state.RepoID, ErrConflict)
	}

	out.Version = newVersion
	return out, nil
}

func rowToState(row *stateRow) (*RepositoryState, error) {
	var records []Record
	if err := json.Unmarshal([]byte(row.Records), &records); err != nil {
		return nil, fmt.Errorf("decode records for %s: %w", row.RepoID, err)
	}

	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for %s: %w", row.RepoID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at for %s: %w", row.RepoID, err)
	}

	return &RepositoryState{
		RepoID:    row.RepoID,
		RepoName:  row.RepoName,
		Records:   records,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Version:   row.Version,
	}, nil
}

func isUniqueViolation(err error) bool {
	// sqlite reports "UNIQUE constraint failed: repo_state.repo_id"
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
