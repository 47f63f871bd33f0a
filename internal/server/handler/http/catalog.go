package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/HoloFavs/internal/models"
)

// CatalogService defines the operations over stored entities.
type CatalogService interface {
	ListCharacters(ctx context.Context) ([]models.Character, error)
	GetCharacter(ctx context.Context, id int64) (*models.Character, error)
	ListPlanets(ctx context.Context) ([]models.Planet, error)
	GetPlanet(ctx context.Context, id int64) (*models.Planet, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error)

	CreateCharacter(ctx context.Context, c models.Character) (*models.Character, error)
	CreatePlanet(ctx context.Context, p models.Planet) (*models.Planet, error)
	CreateVehicle(ctx context.Context, v models.Vehicle) (*models.Vehicle, error)
	DeleteCharacter(ctx context.Context, id int64) error
	DeletePlanet(ctx context.Context, id int64) error
	DeleteVehicle(ctx context.Context, id int64) error
}

// CatalogHandler serves the character, planet and vehicle listings and
// their administration.
type CatalogHandler struct {
	CatalogService CatalogService
}

func listHandler[T any](list func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			writeError(w, err, "")
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func getHandler[T any](get func(context.Context, int64) (*T, error), notFound string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		item, err := get(r.Context(), id)
		if err != nil {
			writeError(w, err, notFound)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func createHandler[T any](create func(context.Context, T) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in T
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request")
			return
		}
		item, err := create(r.Context(), in)
		if err != nil {
			writeError(w, err, "")
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

func deleteHandler(del func(context.Context, int64) error, notFound, deleted string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := del(r.Context(), id); err != nil {
			writeError(w, err, notFound)
			return
		}
		writeMessage(w, http.StatusOK, deleted)
	}
}

// ListCharacters handles GET /api/personajes.
func (h *CatalogHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	listHandler(h.CatalogService.ListCharacters)(w, r)
}

// GetCharacter handles GET /api/personajes/{id}.
func (h *CatalogHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	getHandler(h.CatalogService.GetCharacter, "character not found")(w, r)
}

// ListPlanets handles GET /api/planetas.
func (h *CatalogHandler) ListPlanets(w http.ResponseWriter, r *http.Request) {
	listHandler(h.CatalogService.ListPlanets)(w, r)
}

// GetPlanet handles GET /api/planetas/{id}.
func (h *CatalogHandler) GetPlanet(w http.ResponseWriter, r *http.Request) {
	getHandler(h.CatalogService.GetPlanet, "planet not found")(w, r)
}

// ListVehicles handles GET /api/vehiculos.
func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	listHandler(h.CatalogService.ListVehicles)(w, r)
}

// GetVehicle handles GET /api/vehiculos/{id}.
func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	getHandler(h.CatalogService.GetVehicle, "vehicle not found")(w, r)
}

// CreateCharacter handles POST /api/personajes.
func (h *CatalogHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	createHandler(h.CatalogService.CreateCharacter)(w, r)
}

// DeleteCharacter handles DELETE /api/personajes/{id}.
func (h *CatalogHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	deleteHandler(h.CatalogService.DeleteCharacter, "character not found", "character deleted")(w, r)
}

// CreatePlanet handles POST /api/planetas.
func (h *CatalogHandler) CreatePlanet(w http.ResponseWriter, r *http.Request) {
	createHandler(h.CatalogService.CreatePlanet)(w, r)
}

// DeletePlanet handles DELETE /api/planetas/{id}.
func (h *CatalogHandler) DeletePlanet(w http.ResponseWriter, r *http.Request) {
	deleteHandler(h.CatalogService.DeletePlanet, "planet not found", "planet deleted")(w, r)
}

// CreateVehicle handles POST /api/vehiculos.
func (h *CatalogHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	createHandler(h.CatalogService.CreateVehicle)(w, r)
}

// DeleteVehicle handles DELETE /api/vehiculos/{id}.
func (h *CatalogHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	deleteHandler(h.CatalogService.DeleteVehicle, "vehicle not found", "vehicle deleted")(w, r)
}
