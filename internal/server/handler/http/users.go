package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/HoloFavs/internal/models"
	"github.com/atinyakov/HoloFavs/internal/service"
)

// UserService defines the user operations required by the HTTP handlers.
type UserService interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserHandler handles HTTP requests for user registration and lookup.
type UserHandler struct {
	UserService UserService
}

// Register handles POST /api/usuarios.
// It expects a JSON body with non-empty "email" and "password" fields
// and answers 201 with the stored user.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	u, err := h.UserService.Register(r.Context(), in)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Get handles GET /api/usuarios/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Delete handles DELETE /api/usuarios/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.UserService.Delete(r.Context(), id); err != nil {
		writeError(w, err, "user not found")
		return
	}
	writeMessage(w, http.StatusOK, "user deleted")
}
