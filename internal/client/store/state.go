package store

import "github.com/atinyakov/HoloFavs/internal/models"

// FavoriteStatus tracks where an optimistic favorite is in its sync with
// the backend.
type FavoriteStatus string

const (
	// StatusPending is set when the favorite is added locally and the
	// backend call has not completed yet.
	StatusPending FavoriteStatus = "pending"
	// StatusConfirmed is set once the backend accepted the favorite.
	StatusConfirmed FavoriteStatus = "confirmed"
	// StatusFailed is set when the backend rejected the favorite and
	// rollback is disabled.
	StatusFailed FavoriteStatus = "failed"
)

// Favorite is a locally held favorite. IDs are unique across all types.
type Favorite struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Type   models.EntityType `json:"type"`
	Status FavoriteStatus    `json:"status"`
}

// State is an immutable snapshot of the store.
type State struct {
	Vehicles   []models.Entity
	Planets    []models.Entity
	Characters []models.Entity
	Favorites  []Favorite
	// Details is the currently viewed entity, nil until a detail fetch succeeds.
	Details models.Entity
	UserID  int64
}

// Patch is a partial state update for Store.Set. Nil fields are left as they are.
type Patch struct {
	Vehicles   *[]models.Entity
	Planets    *[]models.Entity
	Characters *[]models.Entity
	Favorites  *[]Favorite
	Details    *models.Entity
}

// clone copies the top-level containers so callers can't mutate store state
// through a snapshot. Entity values are shared; they are replaced, never
// edited in place.
func (s State) clone() State {
	out := s
	out.Vehicles = cloneSlice(s.Vehicles)
	out.Planets = cloneSlice(s.Planets)
	out.Characters = cloneSlice(s.Characters)
	out.Favorites = cloneSlice(s.Favorites)
	out.Details = cloneEntity(s.Details)
	return out
}

func cloneEntity(e models.Entity) models.Entity {
	if e == nil {
		return nil
	}
	out := make(models.Entity, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
