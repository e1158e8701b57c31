// Package services implements the Plate Share operations on top of the
// store layer: user registry, food catalog, request workflow and stats.
package services

import (
	"context"
	"fmt"
	"time"

	"plateshare/models"
	"plateshare/store"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence contract of the user registry.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	List(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// FoodStore is the persistence contract of the food catalog.
type FoodStore interface {
	Insert(ctx context.Context, listing *models.FoodListing) (primitive.ObjectID, error)
	List(ctx context.Context, filter store.FoodFilter) ([]models.FoodListing, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.FoodListing, error)
	Update(ctx context.Context, id primitive.ObjectID, changes models.FoodChanges) (*models.FoodListing, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Count(ctx context.Context, filter store.FoodFilter) (int64, error)
}

// FoodRequestStore is the persistence contract of the request workflow.
type FoodRequestStore interface {
	Insert(ctx context.Context, request *models.FoodRequest) (primitive.ObjectID, error)
	List(ctx context.Context, filter store.FoodRequestFilter) ([]models.FoodRequest, error)
	Update(ctx context.Context, id primitive.ObjectID, changes models.FoodRequestChanges) (*models.FoodRequest, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Count(ctx context.Context, filter store.FoodRequestFilter) (int64, error)
}

var validate = validator.New()

func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidArgument, err)
	}
	return nil
}

// Clock returns the current time. Tests replace it to get stable timestamps.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
