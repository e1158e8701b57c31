package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"plateshare/controllers"
	"plateshare/models"
	"plateshare/routes"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubUsers struct {
	registered []models.RegisterUserInput
	err        error
	role       models.Role
}

func (s *stubUsers) Register(_ context.Context, in models.RegisterUserInput) (primitive.ObjectID, error) {
	s.registered = append(s.registered, in)
	return primitive.NewObjectID(), s.err
}
func (s *stubUsers) List(context.Context) ([]models.User, error) { return []models.User{}, s.err }
func (s *stubUsers) GetRole(context.Context, string) (models.Role, error) {
	return s.role, s.err
}
func (s *stubUsers) PromoteToAdmin(context.Context, string) error { return s.err }
func (s *stubUsers) Delete(context.Context, string) (int64, error) {
	return 0, s.err
}

type stubFoods struct {
	lastFilter string
	lastUpdate models.UpdateFoodInput
	lastAdjust models.AdjustQuantityInput
	err        error
}

func (s *stubFoods) Create(context.Context, models.CreateFoodInput) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), s.err
}
func (s *stubFoods) List(_ context.Context, donatorEmail string) ([]models.FoodListing, error) {
	s.lastFilter = donatorEmail
	return []models.FoodListing{}, s.err
}
func (s *stubFoods) Get(_ context.Context, id string) (*models.FoodListing, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.FoodListing{FoodName: "Rice"}, nil
}
func (s *stubFoods) Update(_ context.Context, _ string, in models.UpdateFoodInput) (*models.FoodListing, error) {
	s.lastUpdate = in
	return &models.FoodListing{}, s.err
}
func (s *stubFoods) AdjustQuantity(_ context.Context, _ string, in models.AdjustQuantityInput) (*models.FoodListing, error) {
	s.lastAdjust = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.FoodListing{Quantity: *in.Quantity, Status: models.DeriveFoodStatus(int(*in.Quantity))}, nil
}
func (s *stubFoods) Delete(context.Context, string) (int64, error) { return 1, s.err }

// testServices holds the services behind the router; nil fields get an
// empty stub.
type testServices struct {
	users    controllers.UserService
	foods    controllers.FoodService
	requests controllers.FoodRequestService
	stats    controllers.StatsService
}

func newTestRouter(t *testing.T, svc testServices) (*mux.Router, *observer.ObservedLogs) {
	t.Helper()
	if svc.users == nil {
		svc.users = &stubUsers{}
	}
	if svc.foods == nil {
		svc.foods = &stubFoods{}
	}
	if svc.requests == nil {
		svc.requests = &stubRequests{}
	}
	if svc.stats == nil {
		svc.stats = &stubStats{}
	}

	core, logs := observer.New(zap.ErrorLevel)
	base := controllers.NewBase(zap.New(core), 0)
	r := mux.NewRouter()
	routes.RegisterRoutes(r, routes.Controllers{
		Users:    controllers.NewUserController(base, svc.users),
		Foods:    controllers.NewFoodController(base, svc.foods),
		Requests: controllers.NewFoodRequestController(base, svc.requests),
		Stats:    controllers.NewStatsController(base, svc.stats),
	}, "3000")
	return r, logs
}

type messageBody struct {
	Message string `json:"message"`
}

type insertBody struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("x: %w", models.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("x: %w", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", models.ErrConflict), http.StatusConflict},
		{fmt.Errorf("x: %w", models.ErrInvalidTransition), http.StatusConflict},
		{errors.New("socket closed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			r, _ := newTestRouter(t, testServices{users: &stubUsers{err: tt.err}})
			rec := do(r, http.MethodGet, "/users", "")
			assert.Equal(t, tt.status, rec.Code)
			var body messageBody
			decode(t, rec, &body)
			assert.NotEmpty(t, body.Message)
		})
	}

	t.Run("Should log and hide unexpected errors", func(t *testing.T) {
		r, logs := newTestRouter(t, testServices{users: &stubUsers{err: errors.New("socket closed")}})
		rec := do(r, http.MethodGet, "/users", "")
		var body messageBody
		decode(t, rec, &body)
		assert.Equal(t, "Server Error", body.Message)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "request failed", logs.All()[0].Message)
	})
}

func TestUserController(t *testing.T) {
	t.Run("Should register and answer with the inserted id", func(t *testing.T) {
		users := &stubUsers{}
		r, _ := newTestRouter(t, testServices{users: users})
		rec := do(r, http.MethodPost, "/users", `{"name":"A","email":"a@x.com","role":"admin"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		var body insertBody
		decode(t, rec, &body)
		assert.True(t, body.Acknowledged)
		assert.Len(t, body.InsertedID, 24)
		require.Len(t, users.registered, 1)
		assert.Equal(t, "a@x.com", users.registered[0].Email)
	})
	t.Run("Should reject malformed JSON", func(t *testing.T) {
		r, _ := newTestRouter(t, testServices{})
		rec := do(r, http.MethodPost, "/users", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("Should report the role", func(t *testing.T) {
		r, _ := newTestRouter(t, testServices{users: &stubUsers{role: models.RoleAdmin}})
		rec := do(r, http.MethodGet, "/users/role/a@x.com", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"role":"admin"}`, rec.Body.String())
	})
	t.Run("Should map a missing user on promotion to 404", func(t *testing.T) {
		r, _ := newTestRouter(t, testServices{users: &stubUsers{err: models.ErrNotFound}})
		rec := do(r, http.MethodPatch, "/users/admin/64b7f0c2a1b2c3d4e5f60718", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestFoodController(t *testing.T) {
	t.Run("Should pass the donor filter through", func(t *testing.T) {
		foods := &stubFoods{}
		r, _ := newTestRouter(t, testServices{foods: foods})
		rec := do(r, http.MethodGet, "/foods?donatorEmail=a@x.com", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		assert.Equal(t, "a@x.com", foods.lastFilter)
	})
	t.Run("Should reject a non numeric quantity before the service", func(t *testing.T) {
		foods := &stubFoods{}
		r, _ := newTestRouter(t, testServices{foods: foods})
		rec := do(r, http.MethodPatch, "/foods/64b7f0c2a1b2c3d4e5f60718", `{"food_quantity":"lots"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "not a number")
		assert.Nil(t, foods.lastAdjust.Quantity)
	})
	t.Run("Should coerce a numeric string quantity", func(t *testing.T) {
		foods := &stubFoods{}
		r, _ := newTestRouter(t, testServices{foods: foods})
		rec := do(r, http.MethodPatch, "/foods/64b7f0c2a1b2c3d4e5f60718", `{"food_name":"Rice","food_quantity":"0"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		var food models.FoodListing
		decode(t, rec, &food)
		assert.Equal(t, models.FoodDonated, food.Status)
	})
	t.Run("Should decode partial updates", func(t *testing.T) {
		foods := &stubFoods{}
		r, _ := newTestRouter(t, testServices{foods: foods})
		rec := do(r, http.MethodPut, "/foods/64b7f0c2a1b2c3d4e5f60718", `{"pickup_location":"Gate 1"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, foods.lastUpdate.PickupLocation)
		assert.Equal(t, "Gate 1", *foods.lastUpdate.PickupLocation)
		assert.Nil(t, foods.lastUpdate.FoodName)
	})
	t.Run("Should report the deleted count", func(t *testing.T) {
		r, _ := newTestRouter(t, testServices{})
		rec := do(r, http.MethodDelete, "/foods/64b7f0c2a1b2c3d4e5f60718", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, rec.Body.String())
	})
	t.Run("Should map a missing listing to 404", func(t *testing.T) {
		r, _ := newTestRouter(t, testServices{foods: &stubFoods{err: models.ErrNotFound}})
		rec := do(r, http.MethodGet, "/foods/64b7f0c2a1b2c3d4e5f60718", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
