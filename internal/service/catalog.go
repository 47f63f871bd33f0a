package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atinyakov/HoloFavs/internal/models"
)

// CatalogRepository stores the characters, planets and vehicles.
type CatalogRepository interface {
	ListCharacters(ctx context.Context) ([]models.Character, error)
	GetCharacter(ctx context.Context, id int64) (*models.Character, error)
	ListPlanets(ctx context.Context) ([]models.Planet, error)
	GetPlanet(ctx context.Context, id int64) (*models.Planet, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error)

	CreateCharacter(ctx context.Context, c *models.Character) (*models.Character, error)
	CreatePlanet(ctx context.Context, p *models.Planet) (*models.Planet, error)
	CreateVehicle(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	DeleteCharacter(ctx context.Context, id int64) error
	DeletePlanet(ctx context.Context, id int64) error
	DeleteVehicle(ctx context.Context, id int64) error
}

// CatalogService exposes the entity catalog and its administration.
type CatalogService struct {
	repo CatalogRepository
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListCharacters returns every stored character ordered by id.
func (s *CatalogService) ListCharacters(ctx context.Context) ([]models.Character, error) {
	return s.repo.ListCharacters(ctx)
}

// GetCharacter returns one character, or models.ErrNotFound.
func (s *CatalogService) GetCharacter(ctx context.Context, id int64) (*models.Character, error) {
	return s.repo.GetCharacter(ctx, id)
}

// ListPlanets returns every stored planet ordered by id.
func (s *CatalogService) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	return s.repo.ListPlanets(ctx)
}

// GetPlanet returns one planet, or models.ErrNotFound.
func (s *CatalogService) GetPlanet(ctx context.Context, id int64) (*models.Planet, error) {
	return s.repo.GetPlanet(ctx, id)
}

// ListVehicles returns every stored vehicle ordered by id.
func (s *CatalogService) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.repo.ListVehicles(ctx)
}

// GetVehicle returns one vehicle, or models.ErrNotFound.
func (s *CatalogService) GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error) {
	return s.repo.GetVehicle(ctx, id)
}

const birthDateLayout = "2006-01-02"

var genders = map[string]bool{"hombre": true, "mujer": true, "desconocido": true}

// CreateCharacter stores a new character. The name and a YYYY-MM-DD birth
// date are required; an empty gender becomes "desconocido".
//
// Returns:
//   - models.ErrValidation for a missing name, bad date or unknown gender
//   - models.ErrAlreadyExists when the name is taken
func (s *CatalogService) CreateCharacter(ctx context.Context, c models.Character) (*models.Character, error) {
	c.ID = 0
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("character name is required: %w", models.ErrValidation)
	}
	if _, err := time.Parse(birthDateLayout, c.BirthDate); err != nil {
		return nil, fmt.Errorf("birth date %q is not YYYY-MM-DD: %w", c.BirthDate, models.ErrValidation)
	}
	if c.Gender == "" {
		c.Gender = "desconocido"
	}
	if !genders[c.Gender] {
		return nil, fmt.Errorf("unknown gender %q: %w", c.Gender, models.ErrValidation)
	}
	return s.repo.CreateCharacter(ctx, &c)
}

// CreatePlanet stores a new planet. Only the name is required.
func (s *CatalogService) CreatePlanet(ctx context.Context, p models.Planet) (*models.Planet, error) {
	p.ID = 0
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("planet name is required: %w", models.ErrValidation)
	}
	return s.repo.CreatePlanet(ctx, &p)
}

// CreateVehicle stores a new vehicle. Only the name is required.
func (s *CatalogService) CreateVehicle(ctx context.Context, v models.Vehicle) (*models.Vehicle, error) {
	v.ID = 0
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return nil, fmt.Errorf("vehicle name is required: %w", models.ErrValidation)
	}
	return s.repo.CreateVehicle(ctx, &v)
}

// DeleteCharacter removes a character and every favorite pointing at it.
func (s *CatalogService) DeleteCharacter(ctx context.Context, id int64) error {
	return s.repo.DeleteCharacter(ctx, id)
}

// DeletePlanet removes a planet and every favorite pointing at it.
func (s *CatalogService) DeletePlanet(ctx context.Context, id int64) error {
	return s.repo.DeletePlanet(ctx, id)
}

// DeleteVehicle removes a vehicle and every favorite pointing at it.
func (s *CatalogService) DeleteVehicle(ctx context.Context, id int64) error {
	return s.repo.DeleteVehicle(ctx, id)
}
