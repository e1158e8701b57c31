package store

import (
	"context"
	"fmt"

	"plateshare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FoodFilter narrows listing queries. Zero fields match everything.
type FoodFilter struct {
	DonatorEmail string
	Status       models.FoodStatus
}

func (f FoodFilter) query() bson.M {
	q := bson.M{}
	if f.DonatorEmail != "" {
		q["donator.email"] = f.DonatorEmail
	}
	if f.Status != "" {
		q["food_status"] = f.Status
	}
	return q
}

// FoodStore persists food listings.
type FoodStore struct {
	Collection *mongo.Collection
}

// NewFoodStore creates a FoodStore over coll.
func NewFoodStore(coll *mongo.Collection) *FoodStore {
	return &FoodStore{Collection: coll}
}

// EnsureIndexes indexes listings by donor email.
func (s *FoodStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "donator.email", Value: 1}},
		Options: options.Index().SetName("donator_email"),
	})
	if err != nil {
		return fmt.Errorf("create foods donator index: %w", err)
	}
	return nil
}

// Insert adds listing and returns its id.
func (s *FoodStore) Insert(ctx context.Context, listing *models.FoodListing) (primitive.ObjectID, error) {
	result, err := s.Collection.InsertOne(ctx, listing)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert food: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// List returns the listings matching filter.
func (s *FoodStore) List(ctx context.Context, filter FoodFilter) ([]models.FoodListing, error) {
	cursor, err := s.Collection.Find(ctx, filter.query())
	if err != nil {
		return nil, fmt.Errorf("find foods: %w", err)
	}
	foods := []models.FoodListing{}
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("read foods: %w", err)
	}
	return foods, nil
}

// Get returns listing id.
func (s *FoodStore) Get(ctx context.Context, id primitive.ObjectID) (*models.FoodListing, error) {
	var food models.FoodListing
	if err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&food); err != nil {
		return nil, notFound(err, "find food "+id.Hex())
	}
	return &food, nil
}

// Update applies changes to listing id and returns the updated document.
func (s *FoodStore) Update(ctx context.Context, id primitive.ObjectID, changes models.FoodChanges) (*models.FoodListing, error) {
	set := bson.M{"updatedAt": now()}
	if changes.Donator != nil {
		set["donator"] = *changes.Donator
	}
	if changes.FoodName != nil {
		set["food_name"] = *changes.FoodName
	}
	if changes.FoodImage != nil {
		set["food_image"] = *changes.FoodImage
	}
	if changes.Quantity != nil {
		set["food_quantity"] = *changes.Quantity
	}
	if changes.PickupLocation != nil {
		set["pickup_location"] = *changes.PickupLocation
	}
	if changes.ExpireDate != nil {
		set["expire_date"] = *changes.ExpireDate
	}
	if changes.AdditionalNotes != nil {
		set["additional_notes"] = *changes.AdditionalNotes
	}
	if changes.Status != nil {
		set["food_status"] = *changes.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var food models.FoodListing
	err := s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&food)
	if err != nil {
		return nil, notFound(err, "update food "+id.Hex())
	}
	return &food, nil
}

// Delete removes listing id and reports how many documents were deleted.
func (s *FoodStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete food: %w", err)
	}
	return result.DeletedCount, nil
}

// Count returns the number of listings matching filter.
func (s *FoodStore) Count(ctx context.Context, filter FoodFilter) (int64, error) {
	n, err := s.Collection.CountDocuments(ctx, filter.query())
	if err != nil {
		return 0, fmt.Errorf("count foods: %w", err)
	}
	return n, nil
}
