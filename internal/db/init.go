// Package db opens the Postgres database and runs its maintenance jobs.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL UNIQUE,
    password_hash BYTEA NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS characters (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    last_name TEXT NOT NULL DEFAULT '',
    gender TEXT CHECK (gender IN ('hombre', 'mujer', 'desconocido')),
    birth_date DATE NOT NULL,
    height INTEGER,
    mass INTEGER,
    hair_color TEXT,
    eye_color TEXT
);

CREATE TABLE IF NOT EXISTS planets (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    climate TEXT,
    diameter INTEGER,
    gravity INTEGER,
    population BIGINT,
    terrain TEXT,
    surface_water INTEGER,
    description TEXT
);

CREATE TABLE IF NOT EXISTS vehicles (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    vehicle_class TEXT,
    manufacturer TEXT,
    cost TEXT,
    length DOUBLE PRECISION,
    crew INTEGER,
    passengers INTEGER,
    speed INTEGER,
    cargo_capacity BIGINT,
    consumables INTEGER,
    description TEXT
);

CREATE TABLE IF NOT EXISTS favorites (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    vehicle_id INTEGER REFERENCES vehicles(id) ON DELETE CASCADE,
    character_id INTEGER REFERENCES characters(id) ON DELETE CASCADE,
    planet_id INTEGER REFERENCES planets(id) ON DELETE CASCADE,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    deactivated_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS favorites_user_active_idx ON favorites (user_id) WHERE active;

CREATE UNIQUE INDEX IF NOT EXISTS favorites_active_unique_idx ON favorites (
    user_id, COALESCE(vehicle_id, 0), COALESCE(character_id, 0), COALESCE(planet_id, 0)
) WHERE active;
`

// InitPostgres opens dsn, checks the connection and applies the schema.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
