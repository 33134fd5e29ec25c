package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pressgang/pressgang/internal/statestore"
)

func sampleReport() *Report {
	return &Report{
		RunID:     "run-1",
		RepoID:    "acme-blog",
		StartedAt: time.Now(),
		Took:      1234 * time.Millisecond,
		Persisted: true,
		Outcomes: []Outcome{
			{Path: "a.md", Status: StatusCreated, Bytes: 100, Record: statestore.Record{RemoteURL: "https://p/1"}},
			{Path: "b.md", Status: StatusUpdated, Bytes: 200, Record: statestore.Record{RemoteURL: "https://p/2"}},
			{Path: "c.md", Status: StatusSkipped},
			{Path: "d.md", Status: StatusFailed, Err: assert.AnError},
		},
	}
}

func TestReport_CountsAndFailures(t *testing.T) {
	r := sampleReport()
	created, updated, skipped, failed := r.Counts()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, failed)
	assert.True(t, r.HasFailures())
	assert.Equal(t, int64(300), r.PublishedBytes())
}

func TestReport_RenderListsEveryPath(t *testing.T) {
	var sb strings.Builder
	sampleReport().Render(&sb)

	out := sb.String()
	for _, path := range []string{"a.md", "b.md", "c.md", "d.md"} {
		assert.Contains(t, out, path)
	}
	assert.Contains(t, out, "1 created, 1 updated, 1 skipped, 1 failed")
	assert.NotContains(t, out, "re-publish", "persisted report carries no warning")
}

func TestReport_RenderWarnsWhenNotPersisted(t *testing.T) {
	r := sampleReport()
	r.Persisted = false

	var sb strings.Builder
	r.Render(&sb)
	assert.Contains(t, sb.String(), "re-publish")
}
