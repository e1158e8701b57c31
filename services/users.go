package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"plateshare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRegistry manages user records and roles.
type UserRegistry struct {
	store UserStore
	now   Clock
}

// NewUserRegistry creates a UserRegistry backed by s.
func NewUserRegistry(s UserStore) *UserRegistry {
	return &UserRegistry{store: s, now: utcNow}
}

// Register creates a user with the default role. A second registration
// for the same email fails with ErrConflict.
func (r *UserRegistry) Register(ctx context.Context, in models.RegisterUserInput) (primitive.ObjectID, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return primitive.NilObjectID, err
	}
	user := &models.User{
		Name:      in.Name,
		Email:     in.Email,
		PhotoURL:  in.PhotoURL,
		Role:      models.DefaultRole,
		CreatedAt: r.now(),
	}
	return r.store.Insert(ctx, user)
}

// List returns all users.
func (r *UserRegistry) List(ctx context.Context) ([]models.User, error) {
	return r.store.List(ctx)
}

// GetRole returns the lower-cased role of email. Unknown users and users
// without a stored role get the default role.
func (r *UserRegistry) GetRole(ctx context.Context, email string) (models.Role, error) {
	user, err := r.store.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return models.DefaultRole, nil
	}
	if err != nil {
		return "", err
	}
	role, err := models.ParseRole(string(user.Role))
	if err != nil {
		// Empty or unrecognized stored roles grant nothing beyond the default.
		return models.DefaultRole, nil
	}
	return role, nil
}

// PromoteToAdmin grants the admin role to user id.
func (r *UserRegistry) PromoteToAdmin(ctx context.Context, id string) error {
	oid, err := models.ParseID(id)
	if err != nil {
		return err
	}
	if err := r.store.SetRole(ctx, oid, models.RoleAdmin); err != nil {
		return fmt.Errorf("promote user: %w", err)
	}
	return nil
}

// Delete removes user id. Listings and requests referencing the user are
// left in place.
func (r *UserRegistry) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return 0, err
	}
	return r.store.Delete(ctx, oid)
}
