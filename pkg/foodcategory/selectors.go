package foodcategory

import (
	"github.com/wilhg/foodadmin/pkg/entity"
	"github.com/wilhg/foodadmin/pkg/errmodel"
)

// GetAll resolves the indexed categories with their items, in index order.
func GetAll(s *State, ents *entity.Store) []*entity.FoodCategoryView {
	if s == nil {
		return []*entity.FoodCategoryView{}
	}
	return entity.DenormalizeFoodCategories(s.IDs, ents)
}

// GetOne resolves one category, or nil when it is not cached.
func GetOne(id string, ents *entity.Store) *entity.FoodCategoryView {
	return entity.DenormalizeFoodCategory(id, ents)
}

func Loading(s *State) bool { return s != nil && s.Loading }

func LoadError(s *State) *errmodel.Error {
	if s == nil {
		return nil
	}
	return s.LoadError
}

func Saving(s *State) bool { return s != nil && s.Saving }

func SaveError(s *State) *errmodel.Error {
	if s == nil {
		return nil
	}
	return s.SaveError
}
