package services

import (
	"context"

	"plateshare/models"
	"plateshare/store"

	"golang.org/x/sync/errgroup"
)

// Stats computes derived counts across collections.
type Stats struct {
	users    UserStore
	foods    FoodStore
	requests FoodRequestStore
}

// NewStats creates a Stats service.
func NewStats(users UserStore, foods FoodStore, requests FoodRequestStore) *Stats {
	return &Stats{users: users, foods: foods, requests: requests}
}

// ForUser counts the listings posted and the requests filed by email.
func (s *Stats) ForUser(ctx context.Context, email string) (models.UserStats, error) {
	var stats models.UserStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalAdded, err = s.foods.Count(ctx, store.FoodFilter{DonatorEmail: email})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalDonated, err = s.foods.Count(ctx, store.FoodFilter{DonatorEmail: email, Status: models.FoodDonated})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRequests, err = s.requests.Count(ctx, store.FoodRequestFilter{RequesterEmail: email})
		return err
	})
	if err := g.Wait(); err != nil {
		return models.UserStats{}, err
	}
	return stats, nil
}

// ForAdmin counts users, listings, requests and delivered requests.
func (s *Stats) ForAdmin(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalFoods, err = s.foods.Count(ctx, store.FoodFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRequests, err = s.requests.Count(ctx, store.FoodRequestFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.CompletedDonations, err = s.requests.Count(ctx, store.FoodRequestFilter{Status: models.RequestDelivered})
		return err
	})
	if err := g.Wait(); err != nil {
		return models.AdminStats{}, err
	}
	return stats, nil
}
