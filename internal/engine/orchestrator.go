package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pressgang/pressgang/internal/content"
	"github.com/pressgang/pressgang/internal/statestore"
)

// ItemLoader supplies the run's candidate items. *content.Source satisfies it.
type ItemLoader interface {
	Load(ctx context.Context) ([]*content.Item, error)
}

// Orchestrator drives one end-to-end run: load state, plan, execute, merge,
// persist. The store is touched exactly twice per run, plus at most one
// retrieve/persist pair when a concurrent run won the first persist.
type Orchestrator struct {
	repoID   string
	repoName string
	loader   ItemLoader
	store    statestore.Store
	executor *Executor
}

func NewOrchestrator(repoID, repoName string, loader ItemLoader, store statestore.Store, executor *Executor) *Orchestrator {
	return &Orchestrator{
		repoID:   repoID,
		repoName: repoName,
		loader:   loader,
		store:    store,
		executor: executor,
	}
}

// Run performs one synchronization run. The returned report is non-nil
// whenever outcomes were computed, even if the final persist failed; the
// error then tells the caller the outcomes are not durably recorded and a
// re-run may re-publish.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	started := time.Now()
	log := slog.With("run_id", runID, "repo", o.repoID)

	items, err := o.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	log.Info("run start", "items", len(items))

	state, err := o.retrieveOrInit(ctx)
	if err != nil {
		return nil, err
	}

	actions := Plan(items, state)
	outcomes := o.executor.Execute(ctx, actions)

	report := &Report{
		RunID:     runID,
		RepoID:    o.repoID,
		StartedAt: started,
		Outcomes:  outcomes,
	}

	persisted, err := o.persistOutcomes(ctx, state, outcomes)
	report.Took = time.Since(started)
	if err != nil {
		return report, err
	}
	report.Persisted = true

	created, updated, skipped, failed := report.Counts()
	log.Info("run done",
		"took", report.Took,
		"created", created,
		"updated", updated,
		"skipped", skipped,
		"failed", failed,
		"state_version", persisted.Version,
	)
	return report, nil
}

// Plan computes the run's actions without publishing anything. Used by the
// dry-run command.
func (o *Orchestrator) Plan(ctx context.Context) ([]Action, error) {
	items, err := o.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	state, err := o.retrieveOrInit(ctx)
	if err != nil {
		return nil, err
	}

	return Plan(items, state), nil
}

func (o *Orchestrator) retrieveOrInit(ctx context.Context) (*statestore.RepositoryState, error) {
	state, err := o.store.Retrieve(ctx, o.repoID)
	if err != nil {
		if errors.Is(err, statestore.ErrNotFound) {
			slog.Info("no prior state, starting fresh", "repo", o.repoID)
			return statestore.NewRepositoryState(o.repoID, o.repoName), nil
		}
		return nil, fmt.Errorf("retrieve state: %w", err)
	}
	return state, nil
}

// persistOutcomes merges the outcomes into the retrieved state and writes it
// back. One conflict is recovered by re-retrieving and re-merging (outcomes
// are idempotent to re-apply); a second conflict fails the run.
func (o *Orchestrator) persistOutcomes(ctx context.Context, state *statestore.RepositoryState, outcomes []Outcome) (*statestore.RepositoryState, error) {
	persisted, err := o.store.Persist(ctx, mergeOutcomes(state, outcomes))
	if err == nil {
		return persisted, nil
	}
	if !errors.Is(err, statestore.ErrConflict) {
		return nil, fmt.Errorf("persist state: %w", err)
	}

	slog.Warn("state version conflict, re-merging against latest", "repo", o.repoID)

	latest, err := o.store.Retrieve(ctx, o.repoID)
	if err != nil {
		if errors.Is(err, statestore.ErrNotFound) {
			// competing writer won the first insert and then vanished; treat
			// as a fresh state rather than failing the run
			latest = statestore.NewRepositoryState(o.repoID, o.repoName)
		} else {
			return nil, fmt.Errorf("re-retrieve state after conflict: %w", err)
		}
	}

	persisted, err = o.store.Persist(ctx, mergeOutcomes(latest, outcomes))
	if err != nil {
		return nil, fmt.Errorf("persist state after conflict retry: %w", err)
	}
	return persisted, nil
}

// mergeOutcomes folds outcomes into a clone of base: every success inserts
// or replaces its record; failures leave any prior record untouched.
func mergeOutcomes(base *statestore.RepositoryState, outcomes []Outcome) *statestore.RepositoryState {
	merged := base.Clone()
	for _, outcome := range outcomes {
		if outcome.Failed() {
			continue
		}
		merged.Put(outcome.Record)
	}
	return merged
}
