package store

import (
	"context"
	"errors"
	"fmt"

	"plateshare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FoodRequestFilter narrows request queries. Zero fields match everything.
type FoodRequestFilter struct {
	FoodID         primitive.ObjectID
	RequesterEmail string
	Status         models.RequestStatus
}

func (f FoodRequestFilter) query() bson.M {
	q := bson.M{}
	if !f.FoodID.IsZero() {
		q["foodId"] = f.FoodID
	}
	if f.RequesterEmail != "" {
		q["requesterEmail"] = f.RequesterEmail
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

// FoodRequestStore persists food requests.
type FoodRequestStore struct {
	Collection *mongo.Collection
}

// NewFoodRequestStore creates a FoodRequestStore over coll.
func NewFoodRequestStore(coll *mongo.Collection) *FoodRequestStore {
	return &FoodRequestStore{Collection: coll}
}

// EnsureIndexes indexes requests by listing and by requester.
func (s *FoodRequestStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "foodId", Value: 1}}, Options: options.Index().SetName("food_id")},
		{Keys: bson.D{{Key: "requesterEmail", Value: 1}}, Options: options.Index().SetName("requester_email")},
	})
	if err != nil {
		return fmt.Errorf("create food-requests indexes: %w", err)
	}
	return nil
}

// Insert adds request and returns its id.
func (s *FoodRequestStore) Insert(ctx context.Context, request *models.FoodRequest) (primitive.ObjectID, error) {
	result, err := s.Collection.InsertOne(ctx, request)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert food request: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// List returns the requests matching filter.
func (s *FoodRequestStore) List(ctx context.Context, filter FoodRequestFilter) ([]models.FoodRequest, error) {
	cursor, err := s.Collection.Find(ctx, filter.query())
	if err != nil {
		return nil, fmt.Errorf("find food requests: %w", err)
	}
	requests := []models.FoodRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("read food requests: %w", err)
	}
	return requests, nil
}

// Update applies changes to request id and returns the updated document.
//
// A status change is only applied if the stored status is one the new status
// may be reached from; the check and the write happen in the same update.
// When that guard rejects the write a second lookup tells a missing request
// (ErrNotFound) apart from a disallowed transition (ErrInvalidTransition).
func (s *FoodRequestStore) Update(ctx context.Context, id primitive.ObjectID, changes models.FoodRequestChanges) (*models.FoodRequest, error) {
	filter := bson.M{"_id": id}
	set := bson.M{"updatedAt": now()}
	if changes.Status != nil {
		set["status"] = *changes.Status
		filter["status"] = bson.M{"$in": models.TransitionSources(*changes.Status)}
	}
	if changes.Location != nil {
		set["location"] = *changes.Location
	}
	if changes.Reason != nil {
		set["reason"] = *changes.Reason
	}
	if changes.ContactNo != nil {
		set["contactNo"] = *changes.ContactNo
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var request models.FoodRequest
	err := s.Collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&request)
	if err == nil {
		return &request, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) || changes.Status == nil {
		return nil, notFound(err, "update food request "+id.Hex())
	}

	var current models.FoodRequest
	if err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&current); err != nil {
		return nil, notFound(err, "find food request "+id.Hex())
	}
	if current.Status.Terminal() {
		return nil, fmt.Errorf("food request %s is already %s: %w",
			id.Hex(), current.Status, models.ErrInvalidTransition)
	}
	return nil, fmt.Errorf("food request %s is %s, cannot become %s: %w",
		id.Hex(), current.Status, *changes.Status, models.ErrInvalidTransition)
}

// Delete removes request id and reports how many documents were deleted.
func (s *FoodRequestStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete food request: %w", err)
	}
	return result.DeletedCount, nil
}

// Count returns the number of requests matching filter.
func (s *FoodRequestStore) Count(ctx context.Context, filter FoodRequestFilter) (int64, error) {
	n, err := s.Collection.CountDocuments(ctx, filter.query())
	if err != nil {
		return 0, fmt.Errorf("count food requests: %w", err)
	}
	return n, nil
}
