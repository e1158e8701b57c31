package controllers

import (
	"context"
	"net/http"

	"plateshare/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodService is the food catalog as seen by the HTTP layer.
type FoodService interface {
	Create(ctx context.Context, in models.CreateFoodInput) (primitive.ObjectID, error)
	List(ctx context.Context, donatorEmail string) ([]models.FoodListing, error)
	Get(ctx context.Context, id string) (*models.FoodListing, error)
	Update(ctx context.Context, id string, in models.UpdateFoodInput) (*models.FoodListing, error)
	AdjustQuantity(ctx context.Context, id string, in models.AdjustQuantityInput) (*models.FoodListing, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// FoodController handles food listing requests
type FoodController struct {
	Base
	Foods FoodService
}

// NewFoodController creates a new FoodController
func NewFoodController(base Base, foods FoodService) *FoodController {
	return &FoodController{Base: base, Foods: foods}
}

// CreateFood posts a new listing
func (fc *FoodController) CreateFood(w http.ResponseWriter, r *http.Request) {
	var in models.CreateFoodInput
	if err := decodeBody(r, &in); err != nil {
		fc.badInput(w, err)
		return
	}

	ctx, cancel := fc.context(r)
	defer cancel()
	id, err := fc.Foods.Create(ctx, in)
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, insertResponse{Acknowledged: true, InsertedID: id.Hex()})
}

// GetFoods lists listings, optionally only those of ?donatorEmail=
func (fc *FoodController) GetFoods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := fc.context(r)
	defer cancel()

	foods, err := fc.Foods.List(ctx, r.URL.Query().Get("donatorEmail"))
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

// GetFoodByID retrieves a single listing
func (fc *FoodController) GetFoodByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := fc.context(r)
	defer cancel()

	food, err := fc.Foods.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

// UpdateFood applies a partial update to a listing
func (fc *FoodController) UpdateFood(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateFoodInput
	if err := decodeBody(r, &in); err != nil {
		fc.badInput(w, err)
		return
	}

	ctx, cancel := fc.context(r)
	defer cancel()
	food, err := fc.Foods.Update(ctx, mux.Vars(r)["id"], in)
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

// AdjustQuantity rewrites a listing's details and quantity, re-deriving its status
func (fc *FoodController) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var in models.AdjustQuantityInput
	if err := decodeBody(r, &in); err != nil {
		fc.badInput(w, err)
		return
	}

	ctx, cancel := fc.context(r)
	defer cancel()
	food, err := fc.Foods.AdjustQuantity(ctx, mux.Vars(r)["id"], in)
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

// DeleteFood removes a listing
func (fc *FoodController) DeleteFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := fc.context(r)
	defer cancel()

	n, err := fc.Foods.Delete(ctx, mux.Vars(r)["id"])
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Acknowledged: true, DeletedCount: n})
}
