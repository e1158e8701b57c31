// Package store holds the MongoDB repositories backing the Plate Share
// collections. Every exported method is a single round trip unless noted.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plateshare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names in the plate share database.
const (
	UsersCollection        = "users"
	FoodsCollection        = "foods"
	FoodRequestsCollection = "food-requests"
)

// Stores groups the repositories built on one database handle.
type Stores struct {
	Users    *UserStore
	Foods    *FoodStore
	Requests *FoodRequestStore
}

// New builds all repositories on db.
func New(db *mongo.Database) *Stores {
	return &Stores{
		Users:    NewUserStore(db.Collection(UsersCollection)),
		Foods:    NewFoodStore(db.Collection(FoodsCollection)),
		Requests: NewFoodRequestStore(db.Collection(FoodRequestsCollection)),
	}
}

// EnsureIndexes creates the indexes every collection relies on. The unique
// email index is what turns concurrent duplicate registrations into a
// Conflict instead of two records.
func (s *Stores) EnsureIndexes(ctx context.Context) error {
	if err := s.Users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := s.Foods.EnsureIndexes(ctx); err != nil {
		return err
	}
	return s.Requests.EnsureIndexes(ctx)
}

func notFound(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
