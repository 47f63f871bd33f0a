package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/HoloFavs/internal/models"
)

// FavoriteRepository defines the persistence operations needed by the FavoriteService.
type FavoriteRepository interface {
	// FindActive returns the active favorite exactly matching req, or models.ErrNotFound.
	FindActive(ctx context.Context, userID int64, req models.FavoriteRequest) (*models.Favorite, error)
	// Create inserts an active favorite.
	Create(ctx context.Context, userID int64, req models.FavoriteRequest) (*models.Favorite, error)
	// Deactivate soft-deletes the favorite with the given id.
	Deactivate(ctx context.Context, id int64) error
	// ListActive returns the user's active favorites.
	ListActive(ctx context.Context, userID int64) ([]models.Favorite, error)
}

// UserChecker reports whether a user exists.
type UserChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// FavoriteService implements favorite activation and deactivation.
type FavoriteService struct {
	repo  FavoriteRepository
	users UserChecker
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(repo FavoriteRepository, users UserChecker) *FavoriteService {
	return &FavoriteService{repo: repo, users: users}
}

func emptyRequest(req models.FavoriteRequest) bool {
	return req.VehicleID == nil && req.CharacterID == nil && req.PlanetID == nil
}

// Activate stores a favorite for userID.
//
// Errors:
//   - models.ErrValidation when req references no entity
//   - models.ErrNotFound when the user or a referenced entity does not exist
//   - models.ErrAlreadyExists when an identical active favorite exists,
//     including one a concurrent request stored first
func (s *FavoriteService) Activate(ctx context.Context, userID int64, req models.FavoriteRequest) (*models.Favorite, error) {
	if emptyRequest(req) {
		return nil, fmt.Errorf("favorite references no entity: %w", models.ErrValidation)
	}

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}

	_, err = s.repo.FindActive(ctx, userID, req)
	switch {
	case err == nil:
		return nil, models.ErrAlreadyExists
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	return s.repo.Create(ctx, userID, req)
}

// Deactivate soft-deletes the active favorite of userID that matches req
// exactly. Returns models.ErrNotFound when there is none.
func (s *FavoriteService) Deactivate(ctx context.Context, userID int64, req models.FavoriteRequest) error {
	fav, err := s.repo.FindActive(ctx, userID, req)
	if err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, fav.ID)
}

// List returns the active favorites of userID.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]models.Favorite, error) {
	return s.repo.ListActive(ctx, userID)
}
