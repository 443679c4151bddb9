package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Schema names the shape of a JSON document exchanged with the backend.
type Schema string

const (
	SchemaNone           Schema = ""
	SchemaFoodItem       Schema = "foodItem"
	SchemaFoodItems      Schema = "foodItems"
	SchemaFoodCategory   Schema = "foodCategory"
	SchemaFoodCategories Schema = "foodCategories"
)

// wireItem and wireCategory are the nested shapes the backend sends.
type wireItem struct {
	ID          string  `json:"_id"`
	Category    string  `json:"category,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

type wireCategory struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Items       []wireItem `json:"items,omitempty"`
}

// Normalize flattens a response document of the given schema into
// Entities. The returned result holds the ids of the top-level records in
// document order. An empty or null document yields empty entities.
func Normalize(schema Schema, data []byte) (Entities, []string, error) {
	var ents Entities
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || schema == SchemaNone {
		return ents, nil, nil
	}
	var result []string
	switch schema {
	case SchemaFoodItem:
		var it wireItem
		if err := json.Unmarshal(data, &it); err != nil {
			return Entities{}, nil, fmt.Errorf("normalize %s: %w", schema, err)
		}
		if id := putItem(&ents, it, it.Category); id != "" {
			result = append(result, id)
		}
	case SchemaFoodItems:
		var items []wireItem
		if err := json.Unmarshal(data, &items); err != nil {
			return Entities{}, nil, fmt.Errorf("normalize %s: %w", schema, err)
		}
		for _, it := range items {
			if id := putItem(&ents, it, it.Category); id != "" {
				result = append(result, id)
			}
		}
	case SchemaFoodCategory:
		var c wireCategory
		if err := json.Unmarshal(data, &c); err != nil {
			return Entities{}, nil, fmt.Errorf("normalize %s: %w", schema, err)
		}
		if id := putCategory(&ents, c); id != "" {
			result = append(result, id)
		}
	case SchemaFoodCategories:
		var cats []wireCategory
		if err := json.Unmarshal(data, &cats); err != nil {
			return Entities{}, nil, fmt.Errorf("normalize %s: %w", schema, err)
		}
		for _, c := range cats {
			if id := putCategory(&ents, c); id != "" {
				result = append(result, id)
			}
		}
	default:
		return Entities{}, nil, fmt.Errorf("normalize: unknown schema %q", schema)
	}
	return ents, result, nil
}

func putItem(ents *Entities, it wireItem, categoryID string) string {
	if it.ID == "" {
		return ""
	}
	ents.FoodItems.Put(it.ID, FoodItem{
		ID:          it.ID,
		CategoryID:  categoryID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
	})
	return it.ID
}

func putCategory(ents *Entities, c wireCategory) string {
	if c.ID == "" {
		return ""
	}
	cat := FoodCategory{ID: c.ID, Name: c.Name, Description: c.Description, Items: []string{}}
	for _, it := range c.Items {
		if id := putItem(ents, it, c.ID); id != "" {
			cat.Items = append(cat.Items, id)
		}
	}
	ents.FoodCategories.Put(c.ID, cat)
	return c.ID
}
