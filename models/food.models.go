package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodStatus is the availability of a listing, derived from its quantity.
type FoodStatus string

const (
	FoodAvailable FoodStatus = "available"
	FoodDonated   FoodStatus = "donated"
)

// ParseFoodStatus accepts legacy capitalized values ("Available") and
// returns the canonical lowercase status.
func ParseFoodStatus(s string) (FoodStatus, error) {
	switch st := FoodStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case FoodAvailable, FoodDonated:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown food status %q", ErrInvalidArgument, s)
	}
}

// DeriveFoodStatus maps remaining quantity to availability.
func DeriveFoodStatus(quantity int) FoodStatus {
	if quantity <= 0 {
		return FoodDonated
	}
	return FoodAvailable
}

// Quantity is a food quantity as sent by clients: either a JSON number or a
// numeric string. Anything that is not a non-negative integer is rejected
// during decoding so it can never reach the store.
type Quantity int

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: quantity: %v", ErrInvalidArgument, err)
		}
		raw = strings.TrimSpace(s)
	}
	n, err := ParseQuantity(raw)
	if err != nil {
		return err
	}
	*q = Quantity(n)
	return nil
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler. Listings written by
// older clients hold the quantity as whatever the form sent, so doubles and
// numeric strings are read as well as integers.
func (q *Quantity) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*q = 0
	case bsontype.Int32:
		*q = Quantity(v.Int32())
	case bsontype.Int64:
		*q = Quantity(v.Int64())
	case bsontype.Double:
		*q = Quantity(math.Trunc(v.Double()))
	case bsontype.String:
		s := strings.TrimSpace(v.StringValue())
		if s == "" {
			*q = 0
			return nil
		}
		n, err := ParseQuantity(s)
		if err != nil {
			return err
		}
		*q = Quantity(n)
	default:
		return fmt.Errorf("cannot decode BSON %s into a quantity", t)
	}
	return nil
}

// ParseQuantity parses s as a non-negative whole number.
func ParseQuantity(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: quantity %q is not a number", ErrInvalidArgument, s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: quantity %q is not a whole number", ErrInvalidArgument, s)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: quantity %q is negative", ErrInvalidArgument, s)
	}
	if f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: quantity %q is too large", ErrInvalidArgument, s)
	}
	return int(f), nil
}

var expireDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// ParseExpireDate accepts RFC 3339 timestamps as well as the date and
// datetime-local formats produced by browser inputs.
func ParseExpireDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range expireDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: expire date %q", ErrInvalidArgument, s)
}

// Date is a listing's expiry. It is written as a BSON datetime and also read
// back from the date strings older clients stored verbatim.
type Date struct {
	time.Time
}

// MarshalBSONValue implements bson.ValueMarshaler.
func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.Time)
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		d.Time = time.Time{}
	case bsontype.DateTime:
		d.Time = time.UnixMilli(v.DateTime()).UTC()
	case bsontype.String:
		s := strings.TrimSpace(v.StringValue())
		if s == "" {
			d.Time = time.Time{}
			return nil
		}
		parsed, err := ParseExpireDate(s)
		if err != nil {
			return err
		}
		d.Time = parsed
	default:
		return fmt.Errorf("cannot decode BSON %s into a date", t)
	}
	return nil
}

// Donator is a snapshot of the donor embedded in each listing. It is not a
// reference; renaming a user does not touch existing listings.
type Donator struct {
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email" validate:"required,email"`
	PhotoURL string `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
}

// FoodListing represents surplus food posted by a donor
type FoodListing struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Donator         Donator            `bson:"donator" json:"donator"`
	FoodName        string             `bson:"food_name" json:"food_name"`
	FoodImage       string             `bson:"food_image" json:"food_image"`
	Quantity        Quantity           `bson:"food_quantity" json:"food_quantity"`
	PickupLocation  string             `bson:"pickup_location" json:"pickup_location"`
	ExpireDate      Date               `bson:"expire_date" json:"expire_date"`
	AdditionalNotes string             `bson:"additional_notes" json:"additional_notes"`
	Status          FoodStatus         `bson:"food_status" json:"food_status"` // "available" or "donated"
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CreateFoodInput is the payload for posting a listing.
type CreateFoodInput struct {
	Donator         *Donator `json:"donator"`
	FoodName        string   `json:"food_name"`
	FoodImage       string   `json:"food_image"`
	Quantity        Quantity `json:"food_quantity"`
	PickupLocation  string   `json:"pickup_location"`
	ExpireDate      string   `json:"expire_date"`
	AdditionalNotes string   `json:"additional_notes"`
	Status          string   `json:"food_status"`
}

// UpdateFoodInput is a partial update; nil fields are left untouched.
type UpdateFoodInput struct {
	Donator         *Donator  `json:"donator"`
	FoodName        *string   `json:"food_name"`
	FoodImage       *string   `json:"food_image"`
	Quantity        *Quantity `json:"food_quantity"`
	PickupLocation  *string   `json:"pickup_location"`
	ExpireDate      *string   `json:"expire_date"`
	AdditionalNotes *string   `json:"additional_notes"`
	Status          *string   `json:"food_status"`
}

// AdjustQuantityInput overwrites the descriptive fields of a listing together
// with its quantity. The status is always re-derived from the quantity.
type AdjustQuantityInput struct {
	FoodName        string    `json:"food_name"`
	FoodImage       string    `json:"food_image"`
	Quantity        *Quantity `json:"food_quantity"`
	PickupLocation  string    `json:"pickup_location"`
	ExpireDate      string    `json:"expire_date"`
	AdditionalNotes string    `json:"additional_notes"`
}

// FoodChanges is a resolved set of field updates for a listing, ready to be
// applied by the store. Nil fields are not written.
type FoodChanges struct {
	Donator         *Donator
	FoodName        *string
	FoodImage       *string
	Quantity        *int
	PickupLocation  *string
	ExpireDate      *time.Time
	AdditionalNotes *string
	Status          *FoodStatus
}

// Empty reports whether no field is set.
func (c FoodChanges) Empty() bool {
	return c.Donator == nil && c.FoodName == nil && c.FoodImage == nil && c.Quantity == nil &&
		c.PickupLocation == nil && c.ExpireDate == nil && c.AdditionalNotes == nil && c.Status == nil
}
