package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the lifecycle state of a food request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestDelivered RequestStatus = "delivered"
)

// requestTransitions lists, for each status, the statuses it may move to.
// Pending is the only initial state; rejected and delivered are final.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:   {RequestAccepted, RequestRejected, RequestDelivered},
	RequestAccepted:  {RequestRejected, RequestDelivered},
	RequestRejected:  nil,
	RequestDelivered: nil,
}

// ParseRequestStatus normalizes s and checks it against the known statuses.
func ParseRequestStatus(s string) (RequestStatus, error) {
	st := RequestStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := requestTransitions[st]; !ok {
		return "", fmt.Errorf("%w: unknown request status %q", ErrInvalidArgument, s)
	}
	return st, nil
}

// Terminal reports whether no further transition is allowed from s.
func (s RequestStatus) Terminal() bool {
	return len(requestTransitions[s]) == 0
}

// CanTransitionTo reports whether s may move to next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, st := range requestTransitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

// TransitionSources returns every status that may move to next, in a stable
// order. The store uses it to guard status updates atomically, so the result
// is never nil: an unreachable status yields an empty list that matches
// nothing.
func TransitionSources(next RequestStatus) []RequestStatus {
	sources := []RequestStatus{}
	for _, from := range []RequestStatus{RequestPending, RequestAccepted, RequestRejected, RequestDelivered} {
		if from.CanTransitionTo(next) {
			sources = append(sources, from)
		}
	}
	return sources
}

// FoodRequest is a recipient's claim against a listing
type FoodRequest struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FoodID            primitive.ObjectID `bson:"foodId" json:"foodId"`
	RequesterEmail    string             `bson:"requesterEmail" json:"requesterEmail"`
	RequesterName     string             `bson:"requesterName,omitempty" json:"requesterName,omitempty"`
	RequesterPhotoURL string             `bson:"requesterPhotoURL,omitempty" json:"requesterPhotoURL,omitempty"`
	Location          string             `bson:"location,omitempty" json:"location,omitempty"`
	Reason            string             `bson:"reason,omitempty" json:"reason,omitempty"`
	ContactNo         string             `bson:"contactNo,omitempty" json:"contactNo,omitempty"`
	Status            RequestStatus      `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CreateFoodRequestInput is the payload for filing a request. Status and
// creation time are assigned by the server and have no field here.
type CreateFoodRequestInput struct {
	FoodID            string `json:"foodId" validate:"required"`
	RequesterEmail    string `json:"requesterEmail" validate:"required,email"`
	RequesterName     string `json:"requesterName"`
	RequesterPhotoURL string `json:"requesterPhotoURL"`
	Location          string `json:"location"`
	Reason            string `json:"reason"`
	ContactNo         string `json:"contactNo"`
}

// UpdateFoodRequestInput is a field-level update of a request.
type UpdateFoodRequestInput struct {
	Status    *string `json:"status"`
	Location  *string `json:"location"`
	Reason    *string `json:"reason"`
	ContactNo *string `json:"contactNo"`
}

// FoodRequestChanges is the resolved form of UpdateFoodRequestInput.
type FoodRequestChanges struct {
	Status    *RequestStatus
	Location  *string
	Reason    *string
	ContactNo *string
}

// Empty reports whether no field is set.
func (c FoodRequestChanges) Empty() bool {
	return c.Status == nil && c.Location == nil && c.Reason == nil && c.ContactNo == nil
}
