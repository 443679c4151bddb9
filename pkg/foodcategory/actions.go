// Package foodcategory owns the category index and the category-level
// remote calls. Its success actions also carry every item of the affected
// categories, which the food-item index rebuilds itself from.
package foodcategory

import (
	"net/http"
	"net/url"

	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/api"
	"github.com/wilhg/foodadmin/pkg/entity"
)

// Actions is the food category action contract.
var Actions = action.FoodCategory

// LoadFoodCategories describes fetching every category with its items.
func LoadFoodCategories() api.Call {
	return api.Call{
		Endpoint:       "admin/foods",
		Method:         http.MethodGet,
		Schema:         entity.SchemaFoodCategory,
		ResponseSchema: entity.SchemaFoodCategories,
		Types:          Actions.LoadAll(),
	}
}

// SaveFoodCategory creates cat when it has no ID and replaces it otherwise.
// Only the category's own fields are sent; items are managed through the
// food item calls.
func SaveFoodCategory(cat entity.FoodCategory) api.Call {
	endpoint := "admin/foods"
	method := http.MethodPost
	if cat.ID != "" {
		endpoint += "/" + url.PathEscape(cat.ID)
		method = http.MethodPut
	}
	return api.Call{
		Endpoint: endpoint,
		Method:   method,
		Body: struct {
			Name        string `json:"name"`
			Description string `json:"description,omitempty"`
		}{cat.Name, cat.Description},
		Schema:         entity.SchemaFoodCategory,
		ResponseSchema: entity.SchemaFoodCategory,
		Types:          Actions.Save(),
	}
}

// DeleteFoodCategory describes removing a category; the backend answers
// with the deleted category.
func DeleteFoodCategory(id string) api.Call {
	return api.Call{
		Endpoint:       "admin/foods/" + url.PathEscape(id),
		Method:         http.MethodDelete,
		Schema:         entity.SchemaFoodCategory,
		ResponseSchema: entity.SchemaFoodCategory,
		Types:          Actions.Delete(),
		ResultIDs:      []string{id},
	}
}
