// Package entity holds the normalized entity cache for food categories and
// food items, along with the normalization and denormalization rules that
// convert between the backend's nested JSON and the flat cache.
package entity

import "slices"

// FoodCategory is the normalized form of a category. Items lists the ids of
// the contained food items in server order.
type FoodCategory struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Items       []string `json:"items"`
}

// Clone returns a copy with its own Items slice.
func (c FoodCategory) Clone() FoodCategory {
	c.Items = slices.Clone(c.Items)
	return c
}

// FoodItem is a single dish. ID is empty until the first successful save;
// CategoryID is filled in from the enclosing category during normalization.
type FoodItem struct {
	ID          string  `json:"_id,omitempty"`
	CategoryID  string  `json:"category,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

// Entities is a set of normalized records, either a response payload or the
// contents of the cache.
type Entities struct {
	FoodCategories Collection[FoodCategory] `json:"foodCategories"`
	FoodItems      Collection[FoodItem]     `json:"foodItems"`
}

// FoodItemIDs returns the food item ids in the order they were normalized.
// It is never nil.
func (e Entities) FoodItemIDs() []string { return e.FoodItems.Keys() }

// FoodCategoryIDs returns the category ids in the order they were normalized.
func (e Entities) FoodCategoryIDs() []string { return e.FoodCategories.Keys() }

// Empty reports whether no records are present.
func (e Entities) Empty() bool {
	return e.FoodCategories.Len() == 0 && e.FoodItems.Len() == 0
}
