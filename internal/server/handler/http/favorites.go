package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/HoloFavs/internal/models"
)

// FavoriteService defines the favorite operations required by the FavoriteHandler.
type FavoriteService interface {
	Activate(ctx context.Context, userID int64, req models.FavoriteRequest) (*models.Favorite, error)
	Deactivate(ctx context.Context, userID int64, req models.FavoriteRequest) error
	List(ctx context.Context, userID int64) ([]models.Favorite, error)
}

// FavoriteHandler handles favorite activation, deactivation and listing.
// The owning user is always taken from the {id} path parameter; the
// usuario_id body field is accepted but ignored.
type FavoriteHandler struct {
	FavoriteService FavoriteService
}

func decodeFavorite(r *http.Request) (int64, models.FavoriteRequest, error) {
	var req models.FavoriteRequest
	userID, err := pathID(r)
	if err != nil {
		return 0, req, err
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return 0, req, errors.New("invalid request")
	}
	return userID, req, nil
}

// Activate handles POST /api/activar_favorito/{id}.
// It answers 201 with the new favorite, 404 for an unknown user or entity
// and 400 when the same favorite is already active.
func (h *FavoriteHandler) Activate(w http.ResponseWriter, r *http.Request) {
	userID, req, err := decodeFavorite(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	fav, err := h.FavoriteService.Activate(r.Context(), userID, req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, fav)
	case errors.Is(err, models.ErrAlreadyExists):
		writeMessage(w, http.StatusBadRequest, "favorite already exists")
	default:
		writeError(w, err, "user or entity not found")
	}
}

// Deactivate handles DELETE /api/desactivar_favorito/{id}.
func (h *FavoriteHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, req, err := decodeFavorite(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.FavoriteService.Deactivate(r.Context(), userID, req); err != nil {
		writeError(w, err, "favorite not found")
		return
	}
	writeMessage(w, http.StatusOK, "favorite deactivated")
}

// List handles GET /api/usuarios/{id}/favoritos.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	favs, err := h.FavoriteService.List(r.Context(), userID)
	if err != nil {
		writeError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, favs)
}
