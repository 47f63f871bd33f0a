// Package service holds the backend business logic for users, the entity
// catalog and favorites, delegating persistence to repository interfaces.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/atinyakov/HoloFavs/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations
// required by the user service.
type UserRepository interface {
	// Create stores u and returns it with its assigned ID.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	// GetByID returns models.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// Exists returns true if a user with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)
	// Delete removes the user and their favorites.
	Delete(ctx context.Context, id int64) error
}

// RegisterInput carries the fields of a new user.
type RegisterInput struct {
	Username  string `json:"username"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellidos"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UserService implements user operations by delegating
// to a UserRepository.
type UserService struct {
	repo UserRepository
	cost int
}

// NewUserService constructs a UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost}
}

// Register validates in, hashes the password and stores the user.
// Missing email or password yields models.ErrValidation. The username
// defaults to the email.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", models.ErrValidation)
	}
	if in.Username == "" {
		in.Username = in.Email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &models.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     true,
	})
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes the user with the given id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
