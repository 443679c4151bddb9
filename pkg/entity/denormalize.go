package entity

// FoodItemView is a food item with its category resolved.
type FoodItemView struct {
	FoodItem
	Category *FoodCategory `json:"categoryRef,omitempty"`
}

// FoodCategoryView is a category with its items resolved. Items missing
// from the cache are skipped.
type FoodCategoryView struct {
	FoodCategory
	FoodItems []FoodItem `json:"foodItems"`
}

// DenormalizeFoodItem resolves id against s. It returns nil when the item is
// not cached; a dangling category reference leaves Category nil.
func DenormalizeFoodItem(id string, s *Store) *FoodItemView {
	it, ok := s.FoodItem(id)
	if !ok {
		return nil
	}
	v := &FoodItemView{FoodItem: it}
	if cat, ok := s.FoodCategory(it.CategoryID); ok {
		c := cat.Clone()
		v.Category = &c
	}
	return v
}

// DenormalizeFoodItems resolves ids in order. Unknown ids produce nil
// entries so positions line up with ids.
func DenormalizeFoodItems(ids []string, s *Store) []*FoodItemView {
	out := make([]*FoodItemView, len(ids))
	for i, id := range ids {
		out[i] = DenormalizeFoodItem(id, s)
	}
	return out
}

// DenormalizeFoodCategory resolves a category and its items.
func DenormalizeFoodCategory(id string, s *Store) *FoodCategoryView {
	cat, ok := s.FoodCategory(id)
	if !ok {
		return nil
	}
	v := &FoodCategoryView{FoodCategory: cat.Clone(), FoodItems: make([]FoodItem, 0, len(cat.Items))}
	for _, itemID := range cat.Items {
		if it, ok := s.FoodItem(itemID); ok {
			v.FoodItems = append(v.FoodItems, it)
		}
	}
	return v
}

// DenormalizeFoodCategories resolves ids in order with nil for unknown ids.
func DenormalizeFoodCategories(ids []string, s *Store) []*FoodCategoryView {
	out := make([]*FoodCategoryView, len(ids))
	for i, id := range ids {
		out[i] = DenormalizeFoodCategory(id, s)
	}
	return out
}
