package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/atinyakov/HoloFavs/internal/models"
)

// DefaultBackendURL is where the favorites backend listens by default.
const DefaultBackendURL = "http://localhost:3001/api"

// Favorites talks to the favorites backend.
type Favorites struct {
	HTTP    *http.Client
	BaseURL string
}

// NewFavorites creates a backend client. An empty baseURL selects
// DefaultBackendURL.
func NewFavorites(baseURL string, client *http.Client) *Favorites {
	if baseURL == "" {
		baseURL = DefaultBackendURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Favorites{HTTP: client, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Activate posts req to /activar_favorito/{usuario_id}.
func (c *Favorites) Activate(ctx context.Context, req models.FavoriteRequest) (map[string]any, error) {
	return c.call(ctx, http.MethodPost, "/activar_favorito/", req)
}

// Deactivate sends req to /desactivar_favorito/{usuario_id} as a DELETE.
func (c *Favorites) Deactivate(ctx context.Context, req models.FavoriteRequest) (map[string]any, error) {
	return c.call(ctx, http.MethodDelete, "/desactivar_favorito/", req)
}

func (c *Favorites) call(ctx context.Context, method, path string, req models.FavoriteRequest) (map[string]any, error) {
	u := c.BaseURL + path + strconv.FormatInt(req.UserID, 10)
	code, body, err := send(ctx, c.HTTP, method, u, req)
	if err != nil {
		return nil, err
	}
	if !statusOK(code) {
		return nil, statusError(code, body)
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out, nil
}
