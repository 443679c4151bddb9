package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wilhg/foodadmin/internal/logging"
	"github.com/wilhg/foodadmin/pkg/api"
	"github.com/wilhg/foodadmin/pkg/entity"
	"github.com/wilhg/foodadmin/pkg/errmodel"
	"github.com/wilhg/foodadmin/pkg/foodcategory"
	"github.com/wilhg/foodadmin/pkg/fooditem"
)

type itemsResponse struct {
	FoodItems []*entity.FoodItemView `json:"foodItems"`
}

type categoriesResponse struct {
	FoodCategories []*entity.FoodCategoryView `json:"foodCategories"`
}

type statusResponse struct {
	FoodItems struct {
		Saving    bool            `json:"saving"`
		SaveError *errmodel.Error `json:"saveError"`
	} `json:"foodItems"`
	FoodCategories struct {
		Loading   bool            `json:"loading"`
		LoadError *errmodel.Error `json:"loadError"`
		Saving    bool            `json:"saving"`
		SaveError *errmodel.Error `json:"saveError"`
	} `json:"foodCategories"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.store.State()
	var out statusResponse
	out.FoodItems.Saving = fooditem.Saving(st.FoodItems)
	out.FoodItems.SaveError = fooditem.SaveError(st.FoodItems)
	out.FoodCategories.Loading = foodcategory.Loading(st.FoodCategories)
	out.FoodCategories.LoadError = foodcategory.LoadError(st.FoodCategories)
	out.FoodCategories.Saving = foodcategory.Saving(st.FoodCategories)
	out.FoodCategories.SaveError = foodcategory.SaveError(st.FoodCategories)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListItems(w http.ResponseWriter, _ *http.Request) {
	st := s.store.State()
	writeJSON(w, http.StatusOK, itemsResponse{FoodItems: fooditem.GetAll(st.FoodItems, st.Entities)})
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view := fooditem.GetOne(id, s.store.State().Entities)
	if view == nil {
		errmodel.WriteHTTP(w, r, errmodel.Validation("not_found", "food item not found", map[string]any{"id": id}))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	st := s.store.State()
	writeJSON(w, http.StatusOK, categoriesResponse{FoodCategories: foodcategory.GetAll(st.FoodCategories, st.Entities)})
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryID")
	view := foodcategory.GetOne(id, s.store.State().Entities)
	if view == nil {
		errmodel.WriteHTTP(w, r, errmodel.Validation("not_found", "food category not found", map[string]any{"id": id}))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if !s.run(w, r, foodcategory.LoadFoodCategories()) {
		return
	}
	s.handleListCategories(w, r)
}

func (s *Server) handleSaveCategory(w http.ResponseWriter, r *http.Request) {
	var cat entity.FoodCategory
	if !decodeBody(w, r, &cat) {
		return
	}
	cat.ID = chi.URLParam(r, "categoryID")
	if cat.Name == "" {
		errmodel.WriteHTTP(w, r, errmodel.Validation("missing_name", "category name is required", nil))
		return
	}
	if !s.run(w, r, foodcategory.SaveFoodCategory(cat)) {
		return
	}
	s.handleListCategories(w, r)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !s.run(w, r, foodcategory.DeleteFoodCategory(chi.URLParam(r, "categoryID"))) {
		return
	}
	s.handleListCategories(w, r)
}

func (s *Server) handleSaveItem(w http.ResponseWriter, r *http.Request) {
	var item entity.FoodItem
	if !decodeBody(w, r, &item) {
		return
	}
	categoryID := chi.URLParam(r, "categoryID")
	item.ID = chi.URLParam(r, "itemID")
	item.CategoryID = categoryID
	if item.Name == "" {
		errmodel.WriteHTTP(w, r, errmodel.Validation("missing_name", "food item name is required", nil))
		return
	}
	if item.Price < 0 {
		errmodel.WriteHTTP(w, r, errmodel.Validation("bad_price", "price must not be negative", map[string]any{"price": item.Price}))
		return
	}
	if !s.run(w, r, fooditem.SaveFoodItem(categoryID, item)) {
		return
	}
	s.handleListItems(w, r)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	categoryID, itemID := chi.URLParam(r, "categoryID"), chi.URLParam(r, "itemID")
	logging.WithFields(r.Context(), "category", categoryID, "item", itemID).Info("deleting food item")
	if !s.run(w, r, fooditem.DeleteFoodItem(categoryID, itemID)) {
		return
	}
	s.handleListItems(w, r)
}

// run executes call and writes the error response when it fails.
func (s *Server) run(w http.ResponseWriter, r *http.Request, call api.Call) bool {
	res, err := s.runner.Run(r.Context(), s.store, call)
	if err != nil {
		logging.FromContext(r.Context()).Error("dispatch failed", "endpoint", call.Endpoint, "error", err)
		errmodel.WriteHTTP(w, r, err)
		return false
	}
	if !res.OK() {
		errmodel.WriteHTTP(w, r, res.Err)
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		errmodel.WriteHTTP(w, r, errmodel.Validation("bad_request", "request body must be a JSON object", map[string]any{"error": err.Error()}))
		return false
	}
	return true
}
