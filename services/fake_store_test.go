package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"plateshare/models"
	"plateshare/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo stores with the same error contract.

type fakeUserStore struct {
	mu    sync.Mutex
	users []models.User
	err   error
}

func (s *fakeUserStore) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return primitive.NilObjectID, s.err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, fmt.Errorf("user %s already exists: %w", user.Email, models.ErrConflict)
		}
	}
	u := *user
	u.ID = primitive.NewObjectID()
	s.users = append(s.users, u)
	return u.ID, nil
}

func (s *fakeUserStore) List(context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User{}, s.users...), s.err
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *fakeUserStore) SetRole(_ context.Context, id primitive.ObjectID, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Role = role
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeUserStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), s.err
}

type fakeFoodStore struct {
	mu    sync.Mutex
	foods []models.FoodListing
}

func foodMatches(f models.FoodListing, filter store.FoodFilter) bool {
	if filter.DonatorEmail != "" && f.Donator.Email != filter.DonatorEmail {
		return false
	}
	if filter.Status != "" && f.Status != filter.Status {
		return false
	}
	return true
}

func (s *fakeFoodStore) Insert(_ context.Context, listing *models.FoodListing) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := *listing
	f.ID = primitive.NewObjectID()
	s.foods = append(s.foods, f)
	return f.ID, nil
}

func (s *fakeFoodStore) List(_ context.Context, filter store.FoodFilter) ([]models.FoodListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.FoodListing{}
	for _, f := range s.foods {
		if foodMatches(f, filter) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeFoodStore) Get(_ context.Context, id primitive.ObjectID) (*models.FoodListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.foods {
		if f.ID == id {
			f := f
			return &f, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *fakeFoodStore) Update(_ context.Context, id primitive.ObjectID, c models.FoodChanges) (*models.FoodListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.foods {
		f := &s.foods[i]
		if f.ID != id {
			continue
		}
		if c.Donator != nil {
			f.Donator = *c.Donator
		}
		if c.FoodName != nil {
			f.FoodName = *c.FoodName
		}
		if c.FoodImage != nil {
			f.FoodImage = *c.FoodImage
		}
		if c.Quantity != nil {
			f.Quantity = models.Quantity(*c.Quantity)
		}
		if c.PickupLocation != nil {
			f.PickupLocation = *c.PickupLocation
		}
		if c.ExpireDate != nil {
			f.ExpireDate = models.Date{Time: *c.ExpireDate}
		}
		if c.AdditionalNotes != nil {
			f.AdditionalNotes = *c.AdditionalNotes
		}
		if c.Status != nil {
			f.Status = *c.Status
		}
		f.UpdatedAt = time.Now().UTC()
		out := *f
		return &out, nil
	}
	return nil, models.ErrNotFound
}

func (s *fakeFoodStore) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.foods {
		if s.foods[i].ID == id {
			s.foods = append(s.foods[:i], s.foods[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeFoodStore) Count(ctx context.Context, filter store.FoodFilter) (int64, error) {
	foods, _ := s.List(ctx, filter)
	return int64(len(foods)), nil
}

type fakeRequestStore struct {
	mu       sync.Mutex
	requests []models.FoodRequest
}

func requestMatches(r models.FoodRequest, filter store.FoodRequestFilter) bool {
	if !filter.FoodID.IsZero() && r.FoodID != filter.FoodID {
		return false
	}
	if filter.RequesterEmail != "" && r.RequesterEmail != filter.RequesterEmail {
		return false
	}
	if filter.Status != "" && r.Status != filter.Status {
		return false
	}
	return true
}

func (s *fakeRequestStore) Insert(_ context.Context, request *models.FoodRequest) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *request
	r.ID = primitive.NewObjectID()
	s.requests = append(s.requests, r)
	return r.ID, nil
}

func (s *fakeRequestStore) List(_ context.Context, filter store.FoodRequestFilter) ([]models.FoodRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.FoodRequest{}
	for _, r := range s.requests {
		if requestMatches(r, filter) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRequestStore) Update(_ context.Context, id primitive.ObjectID, c models.FoodRequestChanges) (*models.FoodRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		r := &s.requests[i]
		if r.ID != id {
			continue
		}
		if c.Status != nil {
			if !slices.Contains(models.TransitionSources(*c.Status), r.Status) {
				return nil, models.ErrInvalidTransition
			}
			r.Status = *c.Status
		}
		if c.Location != nil {
			r.Location = *c.Location
		}
		if c.Reason != nil {
			r.Reason = *c.Reason
		}
		if c.ContactNo != nil {
			r.ContactNo = *c.ContactNo
		}
		out := *r
		return &out, nil
	}
	return nil, models.ErrNotFound
}

func (s *fakeRequestStore) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeRequestStore) Count(ctx context.Context, filter store.FoodRequestFilter) (int64, error) {
	requests, _ := s.List(ctx, filter)
	return int64(len(requests)), nil
}

func strPtr(s string) *string { return &s }

func qtyPtr(n int) *models.Quantity {
	q := models.Quantity(n)
	return &q
}
