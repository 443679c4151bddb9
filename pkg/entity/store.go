package entity

import "slices"

// Store is the normalized entity cache. A *Store is treated as immutable:
// every mutation returns a new *Store and leaves the receiver untouched, so
// selectors may hold on to a snapshot while dispatch continues.
type Store struct {
	Entities
}

// NewStore returns an empty cache.
func NewStore() *Store { return &Store{} }

// FoodItem returns the cached item for id.
func (s *Store) FoodItem(id string) (FoodItem, bool) {
	if s == nil {
		return FoodItem{}, false
	}
	return s.FoodItems.Get(id)
}

// FoodCategory returns the cached category for id.
func (s *Store) FoodCategory(id string) (FoodCategory, bool) {
	if s == nil {
		return FoodCategory{}, false
	}
	return s.FoodCategories.Get(id)
}

func (s *Store) clone() *Store {
	if s == nil {
		return &Store{}
	}
	return &Store{Entities: Entities{
		FoodCategories: s.FoodCategories.Clone(),
		FoodItems:      s.FoodItems.Clone(),
	}}
}

// Merge replaces cached records with those in ents, by id. For every
// category in ents, cached items that point at it but are no longer listed
// in its Items are dropped. Merging empty entities returns s itself.
func (s *Store) Merge(ents Entities) *Store {
	if ents.Empty() {
		return s
	}
	next := s.clone()
	for _, id := range ents.FoodCategories.IDs {
		cat := ents.FoodCategories.ByID[id]
		next.FoodCategories.Put(id, cat.Clone())
		next.pruneOrphans(cat)
	}
	for _, id := range ents.FoodItems.IDs {
		next.FoodItems.Put(id, ents.FoodItems.ByID[id])
	}
	return next
}

// Upsert replaces cached records with those in ents, by id, and drops
// nothing. Upserting empty entities returns s itself.
func (s *Store) Upsert(ents Entities) *Store {
	if ents.Empty() {
		return s
	}
	next := s.clone()
	for _, id := range ents.FoodCategories.IDs {
		next.FoodCategories.Put(id, ents.FoodCategories.ByID[id].Clone())
	}
	for _, id := range ents.FoodItems.IDs {
		next.FoodItems.Put(id, ents.FoodItems.ByID[id])
	}
	return next
}

// RemoveCategories drops the listed categories and every cached item that
// belongs to them.
func (s *Store) RemoveCategories(ids []string) *Store {
	if len(ids) == 0 {
		return s
	}
	next := s.clone()
	for _, id := range ids {
		next.FoodCategories.Delete(id)
		for _, itemID := range next.FoodItems.Keys() {
			if next.FoodItems.ByID[itemID].CategoryID == id {
				next.FoodItems.Delete(itemID)
			}
		}
	}
	return next
}

func (s *Store) pruneOrphans(cat FoodCategory) {
	for _, itemID := range s.FoodItems.Keys() {
		it := s.FoodItems.ByID[itemID]
		if it.CategoryID == cat.ID && !slices.Contains(cat.Items, itemID) {
			s.FoodItems.Delete(itemID)
		}
	}
}
