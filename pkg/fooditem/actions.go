// Package fooditem owns the food-item index: which item ids the admin UI
// currently knows about, plus the status of the last save or delete.
package fooditem

import (
	"net/http"
	"net/url"

	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/api"
	"github.com/wilhg/foodadmin/pkg/entity"
)

// Actions is the food item action contract.
var Actions = action.FoodItem

// SaveFoodItem describes creating item under categoryID when it has no ID
// yet, or replacing it otherwise. The backend answers with the whole
// updated category.
func SaveFoodItem(categoryID string, item entity.FoodItem) api.Call {
	endpoint := "admin/foods/" + url.PathEscape(categoryID) + "/items"
	method := http.MethodPost
	if item.ID != "" {
		endpoint += "/" + url.PathEscape(item.ID)
		method = http.MethodPut
	}
	return api.Call{
		Endpoint:       endpoint,
		Method:         method,
		Body:           item,
		Schema:         entity.SchemaFoodItem,
		ResponseSchema: entity.SchemaFoodCategory,
		Types:          Actions.Save(),
	}
}

// DeleteFoodItem describes removing itemID from categoryID. The backend
// answers with the category's remaining items.
func DeleteFoodItem(categoryID, itemID string) api.Call {
	return api.Call{
		Endpoint:       "admin/foods/" + url.PathEscape(categoryID) + "/items/" + url.PathEscape(itemID),
		Method:         http.MethodDelete,
		Schema:         entity.SchemaFoodItem,
		ResponseSchema: entity.SchemaFoodCategory,
		Types:          Actions.Delete(),
	}
}
