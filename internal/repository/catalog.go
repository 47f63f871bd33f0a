package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/HoloFavs/internal/models"
)

// PostgresCatalogRepository reads the character, planet and vehicle tables.
type PostgresCatalogRepository struct {
	DB *sql.DB
}

// NewPostgresCatalogRepository creates a catalog repository over db.
func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{DB: db}
}

const (
	characterColumns = `id, name, last_name, COALESCE(gender, 'desconocido'),
		to_char(birth_date, 'YYYY-MM-DD'), COALESCE(height, 0), COALESCE(mass, 0),
		COALESCE(hair_color, ''), COALESCE(eye_color, '')`
	planetColumns = `id, name, COALESCE(climate, ''), COALESCE(diameter, 0),
		COALESCE(gravity, 0), COALESCE(population, 0), COALESCE(terrain, ''),
		COALESCE(surface_water, 0), COALESCE(description, '')`
	vehicleColumns = `id, name, COALESCE(vehicle_class, ''), COALESCE(manufacturer, ''),
		COALESCE(cost, ''), COALESCE(length, 0), COALESCE(crew, 0), COALESCE(passengers, 0),
		COALESCE(speed, 0), COALESCE(cargo_capacity, 0), COALESCE(consumables, 0),
		COALESCE(description, '')`
)

type scanner interface {
	Scan(dest ...any) error
}

func scanCharacter(s scanner) (models.Character, error) {
	var c models.Character
	err := s.Scan(&c.ID, &c.Name, &c.LastName, &c.Gender, &c.BirthDate,
		&c.Height, &c.Mass, &c.HairColor, &c.EyeColor)
	return c, err
}

func scanPlanet(s scanner) (models.Planet, error) {
	var p models.Planet
	err := s.Scan(&p.ID, &p.Name, &p.Climate, &p.Diameter, &p.Gravity,
		&p.Population, &p.Terrain, &p.SurfaceWater, &p.Description)
	return p, err
}

func scanVehicle(s scanner) (models.Vehicle, error) {
	var v models.Vehicle
	err := s.Scan(&v.ID, &v.Name, &v.VehicleClass, &v.Manufacturer, &v.Cost,
		&v.Length, &v.Crew, &v.Passengers, &v.Speed, &v.CargoCapacity,
		&v.Consumables, &v.Description)
	return v, err
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, query string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// queryOne runs query for id. No row yields models.ErrNotFound.
func queryOne[T any](ctx context.Context, db *sql.DB, query string, id int64, scan func(scanner) (T, error)) (*T, error) {
	item, err := scan(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return &item, nil
}

// ListCharacters returns every character ordered by id.
func (r *PostgresCatalogRepository) ListCharacters(ctx context.Context) ([]models.Character, error) {
	return queryAll(ctx, r.DB, `SELECT `+characterColumns+` FROM characters ORDER BY id`, scanCharacter)
}

// GetCharacter returns one character.
func (r *PostgresCatalogRepository) GetCharacter(ctx context.Context, id int64) (*models.Character, error) {
	return queryOne(ctx, r.DB, `SELECT `+characterColumns+` FROM characters WHERE id = $1`, id, scanCharacter)
}

// ListPlanets returns every planet ordered by id.
func (r *PostgresCatalogRepository) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	return queryAll(ctx, r.DB, `SELECT `+planetColumns+` FROM planets ORDER BY id`, scanPlanet)
}

// GetPlanet returns one planet.
func (r *PostgresCatalogRepository) GetPlanet(ctx context.Context, id int64) (*models.Planet, error) {
	return queryOne(ctx, r.DB, `SELECT `+planetColumns+` FROM planets WHERE id = $1`, id, scanPlanet)
}

// ListVehicles returns every vehicle ordered by id.
func (r *PostgresCatalogRepository) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return queryAll(ctx, r.DB, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`, scanVehicle)
}

// GetVehicle returns one vehicle.
func (r *PostgresCatalogRepository) GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error) {
	return queryOne(ctx, r.DB, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id, scanVehicle)
}

// insertErr maps constraint failures of a catalog insert onto domain errors.
func insertErr(kind string, err error) error {
	switch pqCode(err) {
	case uniqueViolation:
		return fmt.Errorf("%s: %w", kind, models.ErrAlreadyExists)
	case checkViolation, invalidDatetime, datetimeOverflow:
		return fmt.Errorf("%s: %w", kind, models.ErrValidation)
	}
	return fmt.Errorf("create %s: %w", kind, err)
}

// deleteByID removes row id of table. table is always a package constant.
func deleteByID(ctx context.Context, db *sql.DB, table string, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CreateCharacter inserts c and returns it with its new ID. A duplicate
// name yields models.ErrAlreadyExists; a gender or birth date Postgres
// rejects yields models.ErrValidation.
func (r *PostgresCatalogRepository) CreateCharacter(ctx context.Context, c *models.Character) (*models.Character, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO characters (name, last_name, gender, birth_date, height, mass, hair_color, eye_color)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
		RETURNING id
	`, c.Name, c.LastName, c.Gender, c.BirthDate, c.Height, c.Mass, c.HairColor, c.EyeColor).Scan(&c.ID)
	if err != nil {
		return nil, insertErr("character", err)
	}
	return c, nil
}

// CreatePlanet inserts p and returns it with its new ID.
func (r *PostgresCatalogRepository) CreatePlanet(ctx context.Context, p *models.Planet) (*models.Planet, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO planets (name, climate, diameter, gravity, population, terrain, surface_water, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.Name, p.Climate, p.Diameter, p.Gravity, p.Population, p.Terrain, p.SurfaceWater, p.Description).Scan(&p.ID)
	if err != nil {
		return nil, insertErr("planet", err)
	}
	return p, nil
}

// CreateVehicle inserts v and returns it with its new ID.
func (r *PostgresCatalogRepository) CreateVehicle(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO vehicles (name, vehicle_class, manufacturer, cost, length, crew,
			passengers, speed, cargo_capacity, consumables, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, v.Name, v.VehicleClass, v.Manufacturer, v.Cost, v.Length, v.Crew,
		v.Passengers, v.Speed, v.CargoCapacity, v.Consumables, v.Description).Scan(&v.ID)
	if err != nil {
		return nil, insertErr("vehicle", err)
	}
	return v, nil
}

// DeleteCharacter removes a character. Favorites pointing at it go with it.
func (r *PostgresCatalogRepository) DeleteCharacter(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "characters", id)
}

// DeletePlanet removes a planet.
func (r *PostgresCatalogRepository) DeletePlanet(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "planets", id)
}

// DeleteVehicle removes a vehicle.
func (r *PostgresCatalogRepository) DeleteVehicle(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "vehicles", id)
}
