package engine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pressgang/pressgang/internal/content"
	"github.com/pressgang/pressgang/internal/pressapi"
	"github.com/pressgang/pressgang/internal/statestore"
)

// Publisher is the remote create/update contract. *pressapi.PostsAPI
// satisfies it; tests substitute fakes. Retry policy lives here in the
// executor, not behind this interface.
type Publisher interface {
	Create(ctx context.Context, params *pressapi.PostParams) (*pressapi.PostResponse, error)
	Update(ctx context.Context, remoteID string, params *pressapi.PostParams) (*pressapi.PostResponse, error)
}

type Status uint8

const (
	StatusCreated Status = iota
	StatusUpdated
	StatusSkipped
	StatusFailed
)

var statusNames = []string{
	"created",
	"updated",
	"skipped",
	"failed",
}

func (s Status) String() string {
	return statusNames[s]
}

// Outcome is the result of executing one action. On success Record holds the
// entry to merge into the next repository state; on failure Err holds the
// final error after retries.
type Outcome struct {
	Path   string
	Status Status
	Record statestore.Record
	Bytes  int64
	Err    error
}

// Failed reports whether the outcome must not touch the stored record.
func (o *Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// Executor runs a plan against the publisher with bounded concurrency.
// Failures are isolated per item; transient publish errors are retried
// immediately up to maxAttempts total attempts.
type Executor struct {
	publisher     Publisher
	maxConcurrent int
	maxAttempts   int
}

func NewExecutor(publisher Publisher, maxConcurrent, maxAttempts int) *Executor {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Executor{
		publisher:     publisher,
		maxConcurrent: maxConcurrent,
		maxAttempts:   maxAttempts,
	}
}

// Execute dispatches every non-skip action to the publisher and returns one
// outcome per action, in action order. Skips never reach the publisher.
func (e *Executor) Execute(ctx context.Context, actions []Action) []Outcome {
	outcomes := make([]Outcome, len(actions))

	g := new(errgroup.Group)
	g.SetLimit(e.maxConcurrent)

	for i, action := range actions {
		if action.Type == ActionSkip {
			outcomes[i] = Outcome{
				Path:   action.Path,
				Status: StatusSkipped,
				Record: action.Record,
			}
			continue
		}

		g.Go(func() error {
			outcomes[i] = e.publish(ctx, action)
			return nil
		})
	}

	// goroutines report failures through outcomes, never as errors
	_ = g.Wait()

	return outcomes
}

func (e *Executor) publish(ctx context.Context, action Action) Outcome {
	params := postParams(action.Item)

	var (
		resp *pressapi.PostResponse
		err  error
	)

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		switch action.Type {
		case ActionCreate:
			resp, err = e.publisher.Create(ctx, params)
		case ActionUpdate:
			resp, err = e.publisher.Update(ctx, action.RemoteID, params)
		}

		if err == nil || !pressapi.IsTransient(err) || ctx.Err() != nil {
			break
		}
		slog.Debug("publish retry", "op", action.Type, "path", action.Path, "attempt", attempt, "error", err)
	}

	if err != nil {
		slog.Error("publish", "op", action.Type, "path", action.Path, "error", err)
		return Outcome{
			Path:   action.Path,
			Status: StatusFailed,
			Err:    err,
		}
	}

	slog.Info("publish", "op", action.Type, "path", action.Path, "remote_id", resp.RemoteID)

	status := StatusCreated
	if action.Type == ActionUpdate {
		status = StatusUpdated
	}
	return Outcome{
		Path:   action.Path,
		Status: status,
		Bytes:  int64(len(action.Item.Body)),
		Record: statestore.Record{
			Path:        action.Path,
			ContentHash: action.Item.Hash,
			RemoteID:    resp.RemoteID,
			RemoteURL:   resp.RemoteURL,
		},
	}
}

func postParams(item *content.Item) *pressapi.PostParams {
	desc, _ := item.Meta["description"].(string)
	return &pressapi.PostParams{
		Path:         item.Path,
		Title:        item.Meta.Title(),
		Description:  desc,
		Tags:         item.Meta.Tags(),
		BodyMarkdown: item.Body,
	}
}
