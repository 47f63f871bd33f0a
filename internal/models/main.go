// Package models defines the core data structures shared by the favorites
// backend and the client store.
package models

import "time"

// EntityType identifies a SWAPI resource kind. The values double as the
// SWAPI path segment and as the favorite type tag.
type EntityType string

const (
	// People is the SWAPI kind for characters.
	People EntityType = "people"
	// Vehicles is the SWAPI kind for vehicles.
	Vehicles EntityType = "vehicles"
	// Planets is the SWAPI kind for planets.
	Planets EntityType = "planets"
)

// Valid reports whether t is one of the known entity kinds.
func (t EntityType) Valid() bool {
	switch t {
	case People, Vehicles, Planets:
		return true
	}
	return false
}

// User represents a registered user of the favorites backend.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// FirstName is the user's given name.
	FirstName string `json:"nombre"`
	// LastName is the user's family name.
	LastName string `json:"apellidos"`
	// Email is the unique contact address.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash []byte `json:"-"`
	// IsActive marks whether the account is enabled.
	IsActive bool `json:"is_active"`
}

// Favorite is a favorite record as stored by the backend. Exactly one of
// the entity references is expected to be set, though the backend stores
// whatever the client sent.
type Favorite struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"usuario_id"`
	VehicleID     *int64     `json:"vehiculo_id"`
	CharacterID   *int64     `json:"personaje_id"`
	PlanetID      *int64     `json:"planeta_id"`
	Active        bool       `json:"activo"`
	DeactivatedAt *time.Time `json:"-"`
}

// FavoriteRequest is the wire body of the activate/deactivate endpoints.
// Fields left nil are encoded as JSON null.
type FavoriteRequest struct {
	UserID      int64  `json:"usuario_id"`
	VehicleID   *int64 `json:"vehiculo_id"`
	CharacterID *int64 `json:"personaje_id"`
	PlanetID    *int64 `json:"planeta_id"`
}

// Character is a catalog character served by the backend.
type Character struct {
	ID        int64  `json:"id"`
	Name      string `json:"nombre"`
	LastName  string `json:"apellidos"`
	Gender    string `json:"genero"`
	BirthDate string `json:"nacimiento"`
	Height    int64  `json:"altura"`
	Mass      int64  `json:"peso"`
	HairColor string `json:"color_pelo"`
	EyeColor  string `json:"color_ojos"`
}

// Planet is a catalog planet served by the backend.
type Planet struct {
	ID           int64  `json:"id"`
	Name         string `json:"nombre"`
	Climate      string `json:"temperatura"`
	Diameter     int64  `json:"diametro"`
	Gravity      int64  `json:"gravedad"`
	Population   int64  `json:"poblacion"`
	Terrain      string `json:"terreno"`
	SurfaceWater int64  `json:"superficie_agua"`
	Description  string `json:"descripcion"`
}

// Vehicle is a catalog vehicle served by the backend.
type Vehicle struct {
	ID            int64   `json:"id"`
	Name          string  `json:"nombre"`
	VehicleClass  string  `json:"tipo_vehiculo"`
	Manufacturer  string  `json:"fabricante"`
	Cost          string  `json:"precio"`
	Length        float64 `json:"longitud"`
	Crew          int64   `json:"pilotos"`
	Passengers    int64   `json:"pasajeros"`
	Speed         int64   `json:"velocidad"`
	CargoCapacity int64   `json:"capacidad"`
	Consumables   int64   `json:"consumibles"`
	Description   string  `json:"descripcion"`
}

// Entity is an opaque SWAPI record kept exactly as decoded from JSON.
type Entity map[string]any

// RequestIDHeader carries the per-request correlation id between the CLI
// and the backend.
const RequestIDHeader = "X-Request-ID"
