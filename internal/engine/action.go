// Package engine contains the synchronization core: planning per-path
// actions from the fingerprinted item set and the persisted state, executing
// them against the publisher, and folding the outcomes back into state.
package engine

import (
	"github.com/pressgang/pressgang/internal/content"
	"github.com/pressgang/pressgang/internal/statestore"
)

type ActionType uint8

const (
	ActionCreate ActionType = iota
	ActionUpdate
	ActionSkip
)

var actionTypeNames = []string{
	"create",
	"update",
	"skip",
}

func (a ActionType) String() string {
	return actionTypeNames[a]
}

// Action is one planned operation for a path. Item is nil for skips;
// RemoteID is set for updates; Record carries the existing state entry for
// skips so outcome merging stays uniform.
type Action struct {
	Type     ActionType
	Path     string
	Item     *content.Item
	RemoteID string
	Record   statestore.Record
}
