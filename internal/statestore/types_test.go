package statestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryState_PutReplacesByPath(t *testing.T) {
	s := NewRepositoryState("acme-blog", "ACME Blog")
	s.Put(Record{Path: "a.md", ContentHash: "h1", RemoteID: "p-1"})
	s.Put(Record{Path: "b.md", ContentHash: "h2", RemoteID: "p-2"})
	s.Put(Record{Path: "a.md", ContentHash: "h3", RemoteID: "p-1"})

	require.Len(t, s.Records, 2)
	rec, ok := s.Lookup("a.md")
	require.True(t, ok)
	assert.Equal(t, "h3", rec.ContentHash)

	_, ok = s.Lookup("missing.md")
	assert.False(t, ok)
}

func TestRepositoryState_CloneIsIndependent(t *testing.T) {
	s := NewRepositoryState("acme-blog", "ACME Blog")
	s.Put(Record{Path: "a.md", ContentHash: "h1"})

	c := s.Clone()
	c.Put(Record{Path: "a.md", ContentHash: "h2"})
	c.Put(Record{Path: "b.md", ContentHash: "h3"})

	rec, _ := s.Lookup("a.md")
	assert.Equal(t, "h1", rec.ContentHash)
	assert.Len(t, s.Records, 1)
	assert.Len(t, c.Records, 2)
}

func TestRepositoryState_Index(t *testing.T) {
	s := NewRepositoryState("acme-blog", "ACME Blog")
	s.Put(Record{Path: "a.md", RemoteID: "p-1"})
	s.Put(Record{Path: "b.md", RemoteID: "p-2"})

	idx := s.Index()
	require.Len(t, idx, 2)
	assert.Equal(t, "p-2", idx["b.md"].RemoteID)
}
