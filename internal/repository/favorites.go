package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/HoloFavs/internal/models"
)

// PostgresFavoriteRepository implements favorite persistence against a PostgreSQL database.
type PostgresFavoriteRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresFavoriteRepository creates a new PostgresFavoriteRepository using the provided *sql.DB.
func NewPostgresFavoriteRepository(db *sql.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{DB: db}
}

func nullToPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func scanFavorite(s scanner) (models.Favorite, error) {
	var (
		f                          models.Favorite
		vehicle, character, planet sql.NullInt64
		deactivatedAt              sql.NullTime
	)
	err := s.Scan(&f.ID, &f.UserID, &vehicle, &character, &planet, &f.Active, &deactivatedAt)
	if err != nil {
		return f, err
	}
	f.VehicleID = nullToPtr(vehicle)
	f.CharacterID = nullToPtr(character)
	f.PlanetID = nullToPtr(planet)
	if deactivatedAt.Valid {
		f.DeactivatedAt = &deactivatedAt.Time
	}
	return f, nil
}

// FindActive returns the active favorite of userID whose three entity
// references equal those of req exactly, NULLs included.
//
//	ctx:    context for cancellation and deadlines
//	userID: owner of the favorite
//	req:    entity references to match
//
// Returns models.ErrNotFound when nothing matches.
func (r *PostgresFavoriteRepository) FindActive(ctx context.Context, userID int64, req models.FavoriteRequest) (*models.Favorite, error) {
	f, err := scanFavorite(r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, vehicle_id, character_id, planet_id, active, deactivated_at
		FROM favorites
		WHERE user_id = $1
		  AND vehicle_id IS NOT DISTINCT FROM $2::integer
		  AND character_id IS NOT DISTINCT FROM $3::integer
		  AND planet_id IS NOT DISTINCT FROM $4::integer
		  AND active
		LIMIT 1
	`, userID, req.VehicleID, req.CharacterID, req.PlanetID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	return &f, nil
}

// Create inserts an active favorite for userID. A reference to a missing
// user or entity yields models.ErrNotFound; an identical active favorite
// yields models.ErrAlreadyExists.
func (r *PostgresFavoriteRepository) Create(ctx context.Context, userID int64, req models.FavoriteRequest) (*models.Favorite, error) {
	f := models.Favorite{
		UserID:      userID,
		VehicleID:   req.VehicleID,
		CharacterID: req.CharacterID,
		PlanetID:    req.PlanetID,
		Active:      true,
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO favorites (user_id, vehicle_id, character_id, planet_id, active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id
	`, userID, req.VehicleID, req.CharacterID, req.PlanetID).Scan(&f.ID)
	switch pqCode(err) {
	case "":
	case foreignKeyViolation:
		return nil, fmt.Errorf("favorite reference: %w", models.ErrNotFound)
	case uniqueViolation:
		return nil, fmt.Errorf("favorite: %w", models.ErrAlreadyExists)
	}
	if err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return &f, nil
}

// Deactivate soft-deletes a favorite. The cleaner purges it later.
func (r *PostgresFavoriteRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE favorites SET active = false, deactivated_at = now()
		WHERE id = $1 AND active
	`, id)
	if err != nil {
		return fmt.Errorf("deactivate favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate favorite: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListActive returns the active favorites of userID ordered by id.
func (r *PostgresFavoriteRepository) ListActive(ctx context.Context, userID int64) ([]models.Favorite, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, vehicle_id, character_id, planet_id, active, deactivated_at
		FROM favorites WHERE user_id = $1 AND active ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favs := []models.Favorite{}
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		favs = append(favs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return favs, nil
}
