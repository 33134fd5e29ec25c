package engine

import (
	"github.com/pressgang/pressgang/internal/content"
	"github.com/pressgang/pressgang/internal/statestore"
)

// Plan computes one action per item, in discovery order. A path with no
// state record is created; a record with a differing content hash is
// updated at its existing remote id; an equal hash is skipped. Paths present
// in state but absent from items are left untouched: removing a local file
// does not unpublish the remote post.
func Plan(items []*content.Item, state *statestore.RepositoryState) []Action {
	index := state.Index()

	actions := make([]Action, 0, len(items))
	for _, item := range items {
		record, ok := index[item.Path]
		switch {
		case !ok:
			actions = append(actions, Action{
				Type: ActionCreate,
				Path: item.Path,
				Item: item,
			})
		case record.ContentHash != item.Hash:
			actions = append(actions, Action{
				Type:     ActionUpdate,
				Path:     item.Path,
				Item:     item,
				RemoteID: record.RemoteID,
			})
		default:
			actions = append(actions, Action{
				Type:   ActionSkip,
				Path:   item.Path,
				Record: record,
			})
		}
	}

	return actions
}
