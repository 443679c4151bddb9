package fooditem

import (
	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/errmodel"
)

// State is the food-item index. It never holds records, only ids and the
// status of the request in flight.
type State struct {
	IDs       []string        `json:"ids"`
	Saving    bool            `json:"saving"`
	SaveError *errmodel.Error `json:"saveError"`
}

// InitialState returns an empty index.
func InitialState() *State { return &State{IDs: []string{}} }

// Reduce returns the index after a. Actions it does not react to return
// prev itself. A nil prev is treated as InitialState().
func Reduce(prev *State, a action.Action) *State {
	if prev == nil {
		prev = InitialState()
	}
	switch a.Type {
	case Actions.SaveRequest, Actions.DeleteRequest:
		next := prev.clone()
		next.Saving = true
		next.SaveError = nil
		return next

	case Actions.SaveSuccess:
		// A save answers with one category; items outside it stay known.
		next := prev.clone()
		next.IDs = union(prev.IDs, a.FoodItemIDs())
		next.Saving = false
		return next

	case Actions.DeleteSuccess:
		next := prev.clone()
		next.IDs = a.FoodItemIDs()
		next.Saving = false
		return next

	case action.FoodCategory.SaveSuccess, action.FoodCategory.LoadAllSuccess:
		next := prev.clone()
		next.IDs = a.FoodItemIDs()
		return next

	case Actions.SaveFailure, Actions.DeleteFailure:
		next := prev.clone()
		next.Saving = false
		next.SaveError = a.Error
		return next

	default:
		return prev
	}
}

func (s *State) clone() *State {
	return &State{IDs: append([]string{}, s.IDs...), Saving: s.Saving, SaveError: s.SaveError}
}

// union keeps the order of a and appends ids of b not already present.
func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, ids := range [][]string{a, b} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
