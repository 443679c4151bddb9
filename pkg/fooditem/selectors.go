package fooditem

import (
	"github.com/wilhg/foodadmin/pkg/entity"
	"github.com/wilhg/foodadmin/pkg/errmodel"
)

// GetAll resolves every indexed id against the entity cache, in index
// order. Ids missing from the cache yield nil entries.
func GetAll(s *State, ents *entity.Store) []*entity.FoodItemView {
	if s == nil {
		return []*entity.FoodItemView{}
	}
	return entity.DenormalizeFoodItems(s.IDs, ents)
}

// GetOne resolves a single item, or nil when it is not cached.
func GetOne(id string, ents *entity.Store) *entity.FoodItemView {
	return entity.DenormalizeFoodItem(id, ents)
}

// Saving reports whether a save or delete is in flight.
func Saving(s *State) bool {
	return s != nil && s.Saving
}

// SaveError returns the error of the last failed save or delete.
func SaveError(s *State) *errmodel.Error {
	if s == nil {
		return nil
	}
	return s.SaveError
}
