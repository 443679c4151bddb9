package store

import (
	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/entity"
	"github.com/wilhg/foodadmin/pkg/foodcategory"
	"github.com/wilhg/foodadmin/pkg/fooditem"
)

// State is the whole application state: the entity cache plus one index
// per feature.
type State struct {
	Entities       *entity.Store       `json:"entities"`
	FoodItems      *fooditem.State     `json:"foodItems"`
	FoodCategories *foodcategory.State `json:"foodCategories"`
}

// InitialState returns the empty application state.
func InitialState() *State {
	return &State{
		Entities:       entity.NewStore(),
		FoodItems:      fooditem.InitialState(),
		FoodCategories: foodcategory.InitialState(),
	}
}

// Reduce is the root reducer. The entity cache is updated first so that
// selectors never see an index id without its record. When no sub-state
// changes, prev itself is returned.
func Reduce(prev *State, a action.Action) *State {
	if prev == nil {
		prev = InitialState()
	}
	ents := reduceEntities(prev.Entities, a)
	items := fooditem.Reduce(prev.FoodItems, a)
	cats := foodcategory.Reduce(prev.FoodCategories, a)
	if ents == prev.Entities && items == prev.FoodItems && cats == prev.FoodCategories {
		return prev
	}
	return &State{Entities: ents, FoodItems: items, FoodCategories: cats}
}

func reduceEntities(s *entity.Store, a action.Action) *entity.Store {
	if s == nil {
		s = entity.NewStore()
	}
	if a.Response == nil {
		return s
	}
	switch a.Type {
	case action.FoodCategory.DeleteSuccess:
		return s.RemoveCategories(a.ResultIDs())
	case action.FoodItem.SaveSuccess:
		// The item index keeps ids outside the response, so their
		// records must stay too.
		return s.Upsert(a.Response.Entities)
	}
	return s.Merge(a.Response.Entities)
}
