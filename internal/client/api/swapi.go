package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/atinyakov/HoloFavs/internal/models"
)

// DefaultSWAPIURL is the public SWAPI base path.
const DefaultSWAPIURL = "https://www.swapi.tech/api"

// SWAPI is a read-only client for the public Star Wars API.
type SWAPI struct {
	HTTP    *http.Client
	BaseURL string
}

// NewSWAPI creates a SWAPI client. An empty baseURL selects DefaultSWAPIURL.
func NewSWAPI(baseURL string, client *http.Client) *SWAPI {
	if baseURL == "" {
		baseURL = DefaultSWAPIURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SWAPI{HTTP: client, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Details is the payload of a single-entity lookup.
type Details struct {
	Properties  models.Entity
	Description string
}

// List fetches the first page of the given kind and returns its results.
func (c *SWAPI) List(ctx context.Context, kind models.EntityType) ([]models.Entity, error) {
	u := c.BaseURL + "/" + url.PathEscape(string(kind))
	code, body, err := send(ctx, c.HTTP, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if !statusOK(code) {
		return nil, statusError(code, body)
	}

	var resp struct {
		Results *[]models.Entity `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("%w: no results field", ErrMalformedResponse)
	}
	return *resp.Results, nil
}

// Details fetches one entity. It returns (nil, nil) when the response
// carries no result, which is how SWAPI answers unknown ids.
func (c *SWAPI) Details(ctx context.Context, kind models.EntityType, id int64) (*Details, error) {
	u := c.BaseURL + "/" + url.PathEscape(string(kind)) + "/" + strconv.FormatInt(id, 10)
	code, body, err := send(ctx, c.HTTP, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if !statusOK(code) && code != http.StatusNotFound {
		return nil, statusError(code, body)
	}

	var resp struct {
		Result *struct {
			Properties  models.Entity `json:"properties"`
			Description string        `json:"description"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Result == nil {
		return nil, nil
	}
	return &Details{Properties: resp.Result.Properties, Description: resp.Result.Description}, nil
}
