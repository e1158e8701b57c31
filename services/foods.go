package services

import (
	"context"
	"fmt"
	"strings"

	"plateshare/models"
	"plateshare/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodCatalog manages food listings.
type FoodCatalog struct {
	store FoodStore
	now   Clock
}

// NewFoodCatalog creates a FoodCatalog backed by s.
func NewFoodCatalog(s FoodStore) *FoodCatalog {
	return &FoodCatalog{store: s, now: utcNow}
}

// Create posts a new listing. The donor email is mandatory and the status
// defaults to available. Status is not derived from quantity on insert.
func (c *FoodCatalog) Create(ctx context.Context, in models.CreateFoodInput) (primitive.ObjectID, error) {
	if in.Donator == nil || strings.TrimSpace(in.Donator.Email) == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: donator info missing", models.ErrInvalidArgument)
	}
	if err := validateInput(in.Donator); err != nil {
		return primitive.NilObjectID, err
	}

	status := models.FoodAvailable
	if in.Status != "" {
		st, err := models.ParseFoodStatus(in.Status)
		if err != nil {
			return primitive.NilObjectID, err
		}
		status = st
	}

	listing := &models.FoodListing{
		Donator:         *in.Donator,
		FoodName:        in.FoodName,
		FoodImage:       in.FoodImage,
		Quantity:        in.Quantity,
		PickupLocation:  in.PickupLocation,
		AdditionalNotes: in.AdditionalNotes,
		Status:          status,
		CreatedAt:       c.now(),
	}
	if in.ExpireDate != "" {
		t, err := models.ParseExpireDate(in.ExpireDate)
		if err != nil {
			return primitive.NilObjectID, err
		}
		listing.ExpireDate = models.Date{Time: t}
	}
	return c.store.Insert(ctx, listing)
}

// List returns all listings, or only those posted by donatorEmail when it
// is non-empty.
func (c *FoodCatalog) List(ctx context.Context, donatorEmail string) ([]models.FoodListing, error) {
	return c.store.List(ctx, store.FoodFilter{DonatorEmail: donatorEmail})
}

// Get returns listing id.
func (c *FoodCatalog) Get(ctx context.Context, id string) (*models.FoodListing, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	return c.store.Get(ctx, oid)
}

// Update applies a partial update. A quantity in the update re-derives the
// status and takes precedence over an explicit status.
func (c *FoodCatalog) Update(ctx context.Context, id string, in models.UpdateFoodInput) (*models.FoodListing, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	changes := models.FoodChanges{
		FoodName:        in.FoodName,
		FoodImage:       in.FoodImage,
		PickupLocation:  in.PickupLocation,
		AdditionalNotes: in.AdditionalNotes,
	}
	if in.Donator != nil {
		if err := validateInput(in.Donator); err != nil {
			return nil, err
		}
		changes.Donator = in.Donator
	}
	if in.ExpireDate != nil {
		t, err := models.ParseExpireDate(*in.ExpireDate)
		if err != nil {
			return nil, err
		}
		changes.ExpireDate = &t
	}
	if in.Status != nil {
		st, err := models.ParseFoodStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		changes.Status = &st
	}
	if in.Quantity != nil {
		q := int(*in.Quantity)
		st := models.DeriveFoodStatus(q)
		changes.Quantity = &q
		changes.Status = &st
	}
	if changes.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrInvalidArgument)
	}
	return c.store.Update(ctx, oid, changes)
}

// AdjustQuantity overwrites the descriptive fields and quantity of listing
// id and re-derives its status: donated at zero, available otherwise.
func (c *FoodCatalog) AdjustQuantity(ctx context.Context, id string, in models.AdjustQuantityInput) (*models.FoodListing, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	if in.Quantity == nil {
		return nil, fmt.Errorf("%w: food_quantity is required", models.ErrInvalidArgument)
	}

	q := int(*in.Quantity)
	st := models.DeriveFoodStatus(q)
	changes := models.FoodChanges{
		FoodName:        &in.FoodName,
		FoodImage:       &in.FoodImage,
		Quantity:        &q,
		PickupLocation:  &in.PickupLocation,
		AdditionalNotes: &in.AdditionalNotes,
		Status:          &st,
	}
	if in.ExpireDate != "" {
		t, err := models.ParseExpireDate(in.ExpireDate)
		if err != nil {
			return nil, err
		}
		changes.ExpireDate = &t
	}
	return c.store.Update(ctx, oid, changes)
}

// Delete removes listing id. Requests against it are not touched.
func (c *FoodCatalog) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return 0, err
	}
	return c.store.Delete(ctx, oid)
}
