package foodcategory

import (
	"slices"

	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/errmodel"
)

// State is the category index.
type State struct {
	IDs       []string        `json:"ids"`
	Loading   bool            `json:"loading"`
	LoadError *errmodel.Error `json:"loadError"`
	Saving    bool            `json:"saving"`
	SaveError *errmodel.Error `json:"saveError"`
}

// InitialState returns an empty index.
func InitialState() *State { return &State{IDs: []string{}} }

// Reduce returns the index after a, or prev itself when a is not relevant.
func Reduce(prev *State, a action.Action) *State {
	if prev == nil {
		prev = InitialState()
	}
	switch a.Type {
	case Actions.LoadAllRequest:
		next := prev.clone()
		next.Loading = true
		next.LoadError = nil
		return next
	case Actions.LoadAllSuccess:
		next := prev.clone()
		next.IDs = a.ResultIDs()
		next.Loading = false
		return next
	case Actions.LoadAllFailure:
		next := prev.clone()
		next.Loading = false
		next.LoadError = a.Error
		return next

	case Actions.SaveRequest, Actions.DeleteRequest:
		next := prev.clone()
		next.Saving = true
		next.SaveError = nil
		return next
	case Actions.SaveSuccess:
		next := prev.clone()
		next.IDs = appendMissing(next.IDs, a.ResultIDs())
		next.Saving = false
		return next
	case Actions.DeleteSuccess:
		next := prev.clone()
		removed := a.ResultIDs()
		next.IDs = slices.DeleteFunc(next.IDs, func(id string) bool { return slices.Contains(removed, id) })
		next.Saving = false
		return next
	case Actions.SaveFailure, Actions.DeleteFailure:
		next := prev.clone()
		next.Saving = false
		next.SaveError = a.Error
		return next

	case action.FoodItem.SaveSuccess, action.FoodItem.DeleteSuccess:
		// Item calls answer with their parent category.
		ids := appendMissing(slices.Clone(prev.IDs), a.ResultIDs())
		if len(ids) == len(prev.IDs) {
			return prev
		}
		next := prev.clone()
		next.IDs = ids
		return next

	default:
		return prev
	}
}

func (s *State) clone() *State {
	c := *s
	c.IDs = append([]string{}, s.IDs...)
	return &c
}

func appendMissing(ids, more []string) []string {
	for _, id := range more {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}
