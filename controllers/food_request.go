package controllers

import (
	"context"
	"net/http"

	"plateshare/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodRequestService is the request workflow as seen by the HTTP layer.
type FoodRequestService interface {
	Create(ctx context.Context, in models.CreateFoodRequestInput) (primitive.ObjectID, error)
	ListAll(ctx context.Context) ([]models.FoodRequest, error)
	ListByFood(ctx context.Context, foodID string) ([]models.FoodRequest, error)
	ListByRequester(ctx context.Context, email string) ([]models.FoodRequest, error)
	UpdateStatus(ctx context.Context, id string, in models.UpdateFoodRequestInput) (*models.FoodRequest, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// FoodRequestController handles food request endpoints
type FoodRequestController struct {
	Base
	Requests FoodRequestService
}

// NewFoodRequestController creates a new FoodRequestController
func NewFoodRequestController(base Base, requests FoodRequestService) *FoodRequestController {
	return &FoodRequestController{Base: base, Requests: requests}
}

// CreateRequest files a request against a listing
func (rc *FoodRequestController) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var in models.CreateFoodRequestInput
	if err := decodeBody(r, &in); err != nil {
		rc.badInput(w, err)
		return
	}

	ctx, cancel := rc.context(r)
	defer cancel()
	id, err := rc.Requests.Create(ctx, in)
	if err != nil {
		rc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, insertResponse{Acknowledged: true, InsertedID: id.Hex()})
}

// GetRequests lists every request
func (rc *FoodRequestController) GetRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := rc.context(r)
	defer cancel()

	requests, err := rc.Requests.ListAll(ctx)
	if err != nil {
		rc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// GetRequestsByFood lists the requests filed against one listing
func (rc *FoodRequestController) GetRequestsByFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := rc.context(r)
	defer cancel()

	requests, err := rc.Requests.ListByFood(ctx, mux.Vars(r)["foodId"])
	if err != nil {
		rc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// GetMyRequests lists the requests filed by one requester
func (rc *FoodRequestController) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := rc.context(r)
	defer cancel()

	requests, err := rc.Requests.ListByRequester(ctx, mux.Vars(r)["email"])
	if err != nil {
		rc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// UpdateRequest changes a request's status or details
func (rc *FoodRequestController) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateFoodRequestInput
	if err := decodeBody(r, &in); err != nil {
		rc.badInput(w, err)
		return
	}

	ctx, cancel := rc.context(r)
	defer cancel()
	request, err := rc.Requests.UpdateStatus(ctx, mux.Vars(r)["id"], in)
	if err != nil {
		rc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// DeleteRequest removes a request
func (rc *FoodRequestController) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := rc.context(r)
	defer cancel()

	n, err := rc.Requests.Delete(ctx, mux.Vars(r)["id"])
	if err != nil {
		rc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Acknowledged: true, DeletedCount: n})
}
