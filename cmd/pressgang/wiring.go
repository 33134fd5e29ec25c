package main

import (
	"github.com/pressgang/pressgang/internal/config"
	"github.com/pressgang/pressgang/internal/content"
	"github.com/pressgang/pressgang/internal/engine"
	"github.com/pressgang/pressgang/internal/pressapi"
	"github.com/pressgang/pressgang/internal/statestore"
)

// buildOrchestrator assembles the content source, publisher client and state
// backend described by cfg. The returned cleanup releases whatever the chosen
// backend holds open.
func buildOrchestrator(cfg *config.Config) (*engine.Orchestrator, func(), error) {
	source, err := content.NewSource(cfg.ContentDir, cfg.Formats, cfg.Exclude)
	if err != nil {
		return nil, nil, err
	}

	api := pressapi.New(cfg.ServerURL, cfg.APIToken)

	var store statestore.Store
	cleanup := func() { api.Close() }
	if cfg.StateBackend == config.StateBackendSQLite {
		sqliteStore, err := statestore.NewSQLiteStore(cfg.StatePath)
		if err != nil {
			api.Close()
			return nil, nil, err
		}
		store = sqliteStore
		cleanup = func() {
			_ = sqliteStore.Close()
			api.Close()
		}
	} else {
		store = statestore.NewRemoteStore(api.State)
	}

	exec := engine.NewExecutor(api.Posts, cfg.MaxConcurrent, cfg.MaxAttempts)
	orch := engine.NewOrchestrator(cfg.RepoID, cfg.RepoName, source, store, exec)
	return orch, cleanup, nil
}
