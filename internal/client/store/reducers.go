package store

import (
	"github.com/atinyakov/HoloFavs/internal/client/api"
	"github.com/atinyakov/HoloFavs/internal/models"
)

// The functions below are pure: they never modify the slices or maps of
// their input and always return a fresh State.

// merge applies every non-nil field of p.
func merge(s State, p Patch) State {
	if p.Vehicles != nil {
		s.Vehicles = cloneSlice(*p.Vehicles)
	}
	if p.Planets != nil {
		s.Planets = cloneSlice(*p.Planets)
	}
	if p.Characters != nil {
		s.Characters = cloneSlice(*p.Characters)
	}
	if p.Favorites != nil {
		s.Favorites = cloneSlice(*p.Favorites)
	}
	if p.Details != nil {
		s.Details = cloneEntity(*p.Details)
	}
	return s
}

// withList replaces the list of the given kind. Unknown kinds leave s untouched.
func withList(s State, kind models.EntityType, list []models.Entity) State {
	switch kind {
	case models.People:
		return merge(s, Patch{Characters: &list})
	case models.Vehicles:
		return merge(s, Patch{Vehicles: &list})
	case models.Planets:
		return merge(s, Patch{Planets: &list})
	}
	return s
}

// withDetails replaces the details record with the entity properties plus
// a "description" key.
func withDetails(s State, d *api.Details) State {
	details := make(models.Entity, len(d.Properties)+1)
	for k, v := range d.Properties {
		details[k] = v
	}
	details["description"] = d.Description
	return merge(s, Patch{Details: &details})
}

func hasFavorite(favs []Favorite, id int64) bool {
	for _, f := range favs {
		if f.ID == id {
			return true
		}
	}
	return false
}

// withFavorite appends f unless a favorite with the same id exists.
// The bool reports whether f was added.
func withFavorite(s State, f Favorite) (State, bool) {
	if hasFavorite(s.Favorites, f.ID) {
		return s, false
	}
	favs := make([]Favorite, 0, len(s.Favorites)+1)
	favs = append(favs, s.Favorites...)
	favs = append(favs, f)
	s.Favorites = favs
	return s, true
}

// withoutFavorite drops every favorite with id and returns what it dropped.
func withoutFavorite(s State, id int64) (State, []Favorite) {
	kept := make([]Favorite, 0, len(s.Favorites))
	var removed []Favorite
	for _, f := range s.Favorites {
		if f.ID == id {
			removed = append(removed, f)
			continue
		}
		kept = append(kept, f)
	}
	s.Favorites = kept
	return s, removed
}

// withoutPending drops the favorite with id only while it is still pending.
func withoutPending(s State, id int64) State {
	kept := make([]Favorite, 0, len(s.Favorites))
	for _, f := range s.Favorites {
		if f.ID == id && f.Status == StatusPending {
			continue
		}
		kept = append(kept, f)
	}
	s.Favorites = kept
	return s
}

// settle moves a pending favorite to status. Favorites in any other status
// are left alone.
func settle(s State, id int64, status FavoriteStatus) State {
	favs := cloneSlice(s.Favorites)
	for i := range favs {
		if favs[i].ID == id && favs[i].Status == StatusPending {
			favs[i].Status = status
		}
	}
	s.Favorites = favs
	return s
}

// restore re-appends removed favorites whose ids are free again.
func restore(s State, removed []Favorite) State {
	for _, f := range removed {
		s, _ = withFavorite(s, f)
	}
	return s
}

// activationRequest builds the add payload: id lands in the one field that
// matches kind, the others stay null.
func activationRequest(userID, id int64, kind models.EntityType) models.FavoriteRequest {
	req := models.FavoriteRequest{UserID: userID}
	switch kind {
	case models.Vehicles:
		req.VehicleID = &id
	case models.People:
		req.CharacterID = &id
	case models.Planets:
		req.PlanetID = &id
	}
	return req
}

// deactivationRequest builds the remove payload. The backend receives the
// same id in all three type fields.
// TODO: carry the favorite type once the backend matches on a single column;
// the exact-match lookup cannot find rows created by activationRequest.
func deactivationRequest(userID, id int64) models.FavoriteRequest {
	return models.FavoriteRequest{
		UserID:      userID,
		VehicleID:   &id,
		CharacterID: &id,
		PlanetID:    &id,
	}
}
