package controllers

import (
	"context"
	"net/http"

	"plateshare/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService is the user registry as seen by the HTTP layer.
type UserService interface {
	Register(ctx context.Context, in models.RegisterUserInput) (primitive.ObjectID, error)
	List(ctx context.Context) ([]models.User, error)
	GetRole(ctx context.Context, email string) (models.Role, error)
	PromoteToAdmin(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) (int64, error)
}

// UserController handles user-related requests
type UserController struct {
	Base
	Users UserService
}

// NewUserController creates a new UserController
func NewUserController(base Base, users UserService) *UserController {
	return &UserController{Base: base, Users: users}
}

// GetUsers lists all users
func (uc *UserController) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := uc.context(r)
	defer cancel()

	users, err := uc.Users.List(ctx)
	if err != nil {
		uc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterUserInput
	if err := decodeBody(r, &in); err != nil {
		uc.badInput(w, err)
		return
	}

	ctx, cancel := uc.context(r)
	defer cancel()
	id, err := uc.Users.Register(ctx, in)
	if err != nil {
		uc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, insertResponse{Acknowledged: true, InsertedID: id.Hex()})
}

// GetRole reports the role of the user with the given email
func (uc *UserController) GetRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := uc.context(r)
	defer cancel()

	role, err := uc.Users.GetRole(ctx, mux.Vars(r)["email"])
	if err != nil {
		uc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.Role{"role": role})
}

// PromoteToAdmin grants the admin role
func (uc *UserController) PromoteToAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := uc.context(r)
	defer cancel()

	if err := uc.Users.PromoteToAdmin(ctx, mux.Vars(r)["id"]); err != nil {
		uc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "User promoted to admin"})
}

// DeleteUser removes a user
func (uc *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := uc.context(r)
	defer cancel()

	n, err := uc.Users.Delete(ctx, mux.Vars(r)["id"])
	if err != nil {
		uc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Acknowledged: true, DeletedCount: n})
}
