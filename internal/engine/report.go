package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	labelCreated = color.New(color.FgHiGreen).SprintFunc()
	labelUpdated = color.New(color.FgHiCyan).SprintFunc()
	labelSkipped = color.New(color.Faint).SprintFunc()
	labelFailed  = color.New(color.FgHiRed, color.Bold).SprintFunc()
)

// Report is the user-facing result of one run: every path with its outcome.
// Persisted is false when the final state write did not happen; the caller
// must warn that a re-run may re-publish.
type Report struct {
	RunID     string
	RepoID    string
	StartedAt time.Time
	Took      time.Duration
	Outcomes  []Outcome
	Persisted bool
}

// Counts tallies outcomes by status.
func (r *Report) Counts() (created, updated, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusCreated:
			created++
		case StatusUpdated:
			updated++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return
}

// HasFailures reports whether any path failed. Failures are a non-zero-exit
// condition for the invoking process.
func (r *Report) HasFailures() bool {
	for _, o := range r.Outcomes {
		if o.Failed() {
			return true
		}
	}
	return false
}

// PublishedBytes sums the body bytes actually sent to the publisher.
func (r *Report) PublishedBytes() int64 {
	var total int64
	for _, o := range r.Outcomes {
		total += o.Bytes
	}
	return total
}

// Render writes the per-path outcome table and a summary line.
func (r *Report) Render(w io.Writer) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusCreated:
			fmt.Fprintf(w, "  %s  %s -> %s\n", labelCreated("created"), o.Path, o.Record.RemoteURL)
		case StatusUpdated:
			fmt.Fprintf(w, "  %s  %s -> %s\n", labelUpdated("updated"), o.Path, o.Record.RemoteURL)
		case StatusSkipped:
			fmt.Fprintf(w, "  %s  %s\n", labelSkipped("skipped"), o.Path)
		case StatusFailed:
			fmt.Fprintf(w, "  %s   %s: %v\n", labelFailed("failed"), o.Path, o.Err)
		}
	}

	created, updated, skipped, failed := r.Counts()
	fmt.Fprintf(w, "\n%d created, %d updated, %d skipped, %d failed (%s published in %s)\n",
		created, updated, skipped, failed,
		humanize.Bytes(uint64(r.PublishedBytes())),
		r.Took.Round(time.Millisecond),
	)

	if !r.Persisted {
		fmt.Fprintf(w, "%s\n", labelFailed("warning: outcomes were not recorded; a re-run may re-publish"))
	}
}
