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

// UserStore persists users.
type UserStore struct {
	Collection *mongo.Collection
}

// NewUserStore creates a UserStore over coll.
func NewUserStore(coll *mongo.Collection) *UserStore {
	return &UserStore{Collection: coll}
}

// EnsureIndexes creates the unique email index.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

// Insert adds user and returns its id. A duplicate email yields ErrConflict.
func (s *UserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	result, err := s.Collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("user %s already exists: %w", user.Email, models.ErrConflict)
		}
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// List returns every user.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	return users, nil
}

// FindByEmail returns the user registered with email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, notFound(err, "find user by email")
	}
	return &user, nil
}

// SetRole overwrites the role of user id.
func (s *UserStore) SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	result, err := s.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"role": role},
	})
	if err != nil {
		return fmt.Errorf("set user role: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), models.ErrNotFound)
	}
	return nil
}

// Delete removes user id and reports how many documents were deleted.
func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return result.DeletedCount, nil
}

// Count returns the number of users.
func (s *UserStore) Count(ctx context.Context) (int64, error) {
	n, err := s.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
