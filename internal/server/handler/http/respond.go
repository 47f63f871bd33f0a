package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/atinyakov/HoloFavs/internal/models"
	"github.com/go-chi/chi/v5"
)

var errInvalidID = errors.New("invalid id")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// pathID parses the {id} URL parameter as a positive integer.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// writeError maps domain errors onto status codes. notFound is the message
// used for models.ErrNotFound.
func writeError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, models.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrAlreadyExists):
		writeMessage(w, http.StatusConflict, "already exists")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}
