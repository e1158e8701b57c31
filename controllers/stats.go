package controllers

import (
	"context"
	"net/http"

	"plateshare/models"

	"github.com/gorilla/mux"
)

// StatsService computes dashboard counts.
type StatsService interface {
	ForUser(ctx context.Context, email string) (models.UserStats, error)
	ForAdmin(ctx context.Context) (models.AdminStats, error)
}

// StatsController serves the dashboard counters
type StatsController struct {
	Base
	Stats StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(base Base, stats StatsService) *StatsController {
	return &StatsController{Base: base, Stats: stats}
}

// GetUserStats reports one user's listing and request counts
func (sc *StatsController) GetUserStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := sc.context(r)
	defer cancel()

	stats, err := sc.Stats.ForUser(ctx, mux.Vars(r)["email"])
	if err != nil {
		sc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GetAdminStats reports marketplace-wide counts
func (sc *StatsController) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := sc.context(r)
	defer cancel()

	stats, err := sc.Stats.ForAdmin(ctx)
	if err != nil {
		sc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
