package action

import "strings"

// Lifecycle is the request/success/failure triple of one remote call.
type Lifecycle struct {
	Request Type `json:"request"`
	Success Type `json:"success"`
	Failure Type `json:"failure"`
}

// Contains reports whether t is one of the three stages.
func (l Lifecycle) Contains(t Type) bool {
	return t == l.Request || t == l.Success || t == l.Failure
}

// CRUD is the full set of action types for one entity.
type CRUD struct {
	Entity string

	LoadAllRequest Type
	LoadAllSuccess Type
	LoadAllFailure Type

	SaveRequest Type
	SaveSuccess Type
	SaveFailure Type

	DeleteRequest Type
	DeleteSuccess Type
	DeleteFailure Type
}

// NewCRUD derives the CRUD action types for entity.
func NewCRUD(entity string) CRUD {
	t := func(stage string) Type { return Type(entity + "/" + stage) }
	return CRUD{
		Entity:         entity,
		LoadAllRequest: t("LOAD_ALL_REQUEST"),
		LoadAllSuccess: t("LOAD_ALL_SUCCESS"),
		LoadAllFailure: t("LOAD_ALL_FAILURE"),
		SaveRequest:    t("SAVE_REQUEST"),
		SaveSuccess:    t("SAVE_SUCCESS"),
		SaveFailure:    t("SAVE_FAILURE"),
		DeleteRequest:  t("DELETE_REQUEST"),
		DeleteSuccess:  t("DELETE_SUCCESS"),
		DeleteFailure:  t("DELETE_FAILURE"),
	}
}

// LoadAll returns the load-all lifecycle.
func (c CRUD) LoadAll() Lifecycle {
	return Lifecycle{Request: c.LoadAllRequest, Success: c.LoadAllSuccess, Failure: c.LoadAllFailure}
}

// Save returns the create/update lifecycle.
func (c CRUD) Save() Lifecycle {
	return Lifecycle{Request: c.SaveRequest, Success: c.SaveSuccess, Failure: c.SaveFailure}
}

// Delete returns the delete lifecycle.
func (c CRUD) Delete() Lifecycle {
	return Lifecycle{Request: c.DeleteRequest, Success: c.DeleteSuccess, Failure: c.DeleteFailure}
}

// Owns reports whether t belongs to this entity's action types.
func (c CRUD) Owns(t Type) bool {
	return strings.HasPrefix(string(t), c.Entity+"/")
}

// The published cross-entity contract. Reducers react to each other's
// actions only through these values.
var (
	FoodCategory = NewCRUD("foodCategory")
	FoodItem     = NewCRUD("foodItem")
)
