package action

import (
	"slices"
	"testing"

	"github.com/wilhg/foodadmin/pkg/entity"
)

func TestNewCRUD(t *testing.T) {
	c := NewCRUD("foodItem")
	if c.SaveRequest != "foodItem/SAVE_REQUEST" || c.DeleteFailure != "foodItem/DELETE_FAILURE" {
		t.Fatalf("unexpected types: %+v", c)
	}
	if !c.Owns(c.LoadAllSuccess) || c.Owns(FoodCategory.SaveSuccess) {
		t.Fatal("Owns mismatch")
	}
	if !c.Save().Contains(c.SaveFailure) || c.Save().Contains(c.DeleteFailure) {
		t.Fatal("Lifecycle.Contains mismatch")
	}
	if FoodItem.Entity != "foodItem" || FoodCategory.Entity != "foodCategory" {
		t.Fatal("published contract changed")
	}
}

func TestAction_IDsWithoutResponse(t *testing.T) {
	var a Action
	if ids := a.FoodItemIDs(); ids == nil || len(ids) != 0 {
		t.Fatalf("FoodItemIDs=%#v", ids)
	}
	if ids := a.ResultIDs(); ids == nil || len(ids) != 0 {
		t.Fatalf("ResultIDs=%#v", ids)
	}
}

func TestAction_IDsFromResponse(t *testing.T) {
	ents, result, err := entity.Normalize(entity.SchemaFoodCategory, []byte(`{"_id":"c1","name":"x","items":[{"_id":"b","name":"B"},{"_id":"a","name":"A"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	a := Action{Type: FoodItem.SaveSuccess, Response: &Response{Entities: ents, Result: result}}
	if got := a.FoodItemIDs(); !slices.Equal(got, []string{"b", "a"}) {
		t.Fatalf("FoodItemIDs=%v", got)
	}
	got := a.ResultIDs()
	got[0] = "mutated"
	if a.Response.Result[0] != "c1" {
		t.Fatal("ResultIDs must return a copy")
	}
}
