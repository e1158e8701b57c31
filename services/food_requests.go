package services

import (
	"context"
	"fmt"
	"strings"

	"plateshare/models"
	"plateshare/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestWorkflow manages food requests and their status lifecycle.
type RequestWorkflow struct {
	store FoodRequestStore
	now   Clock
}

// NewRequestWorkflow creates a RequestWorkflow backed by s.
func NewRequestWorkflow(s FoodRequestStore) *RequestWorkflow {
	return &RequestWorkflow{store: s, now: utcNow}
}

// Create files a request against a listing. The request always starts
// pending with a server-assigned creation time.
func (w *RequestWorkflow) Create(ctx context.Context, in models.CreateFoodRequestInput) (primitive.ObjectID, error) {
	in.RequesterEmail = strings.TrimSpace(in.RequesterEmail)
	if err := validateInput(in); err != nil {
		return primitive.NilObjectID, err
	}
	foodID, err := models.ParseID(in.FoodID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	request := &models.FoodRequest{
		FoodID:            foodID,
		RequesterEmail:    in.RequesterEmail,
		RequesterName:     in.RequesterName,
		RequesterPhotoURL: in.RequesterPhotoURL,
		Location:          in.Location,
		Reason:            in.Reason,
		ContactNo:         in.ContactNo,
		Status:            models.RequestPending,
		CreatedAt:         w.now(),
	}
	return w.store.Insert(ctx, request)
}

// ListAll returns every request.
func (w *RequestWorkflow) ListAll(ctx context.Context) ([]models.FoodRequest, error) {
	return w.store.List(ctx, store.FoodRequestFilter{})
}

// ListByFood returns the requests filed against listing foodID, in any status.
func (w *RequestWorkflow) ListByFood(ctx context.Context, foodID string) ([]models.FoodRequest, error) {
	oid, err := models.ParseID(foodID)
	if err != nil {
		return nil, err
	}
	return w.store.List(ctx, store.FoodRequestFilter{FoodID: oid})
}

// ListByRequester returns the requests filed by email.
func (w *RequestWorkflow) ListByRequester(ctx context.Context, email string) ([]models.FoodRequest, error) {
	return w.store.List(ctx, store.FoodRequestFilter{RequesterEmail: email})
}

// UpdateStatus applies a field-level update to request id. A new status
// must be known and reachable from the current one.
func (w *RequestWorkflow) UpdateStatus(ctx context.Context, id string, in models.UpdateFoodRequestInput) (*models.FoodRequest, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	changes := models.FoodRequestChanges{
		Location:  in.Location,
		Reason:    in.Reason,
		ContactNo: in.ContactNo,
	}
	if in.Status != nil {
		st, err := models.ParseRequestStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		changes.Status = &st
	}
	if changes.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrInvalidArgument)
	}
	return w.store.Update(ctx, oid, changes)
}

// Delete removes request id. The referenced listing is not touched.
func (w *RequestWorkflow) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return 0, err
	}
	return w.store.Delete(ctx, oid)
}
