// Package repository provides PostgreSQL persistence for users, the entity
// catalog and favorites.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/HoloFavs/internal/models"
)

// PostgresUserRepository implements user persistence using a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Create inserts u and returns it with its new ID. A duplicate username or
// email yields models.ErrAlreadyExists.
func (r *PostgresUserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, first_name, last_name, email, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, u.Username, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.IsActive).Scan(&u.ID)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return nil, fmt.Errorf("user %q: %w", u.Email, models.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID fetches a user. Unknown ids yield models.ErrNotFound.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, email, password_hash, is_active
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Exists checks whether a user with the specified id exists.
func (r *PostgresUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`,
		id,
	).Scan(&exists)
	return exists, err
}

// Delete removes a user and, through the foreign key, their favorites.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
