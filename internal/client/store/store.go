// Package store holds the client-side application state: the SWAPI lists,
// the currently viewed details record and the user's favorites, together
// with the actions that fill and change them over HTTP.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/atinyakov/HoloFavs/internal/client/api"
	"github.com/atinyakov/HoloFavs/internal/models"
	"go.uber.org/zap"
)

// ErrFavoriteExists is returned by AddFavorite when the id is already a favorite.
var ErrFavoriteExists = errors.New("favorite already exists")

// Catalog is the read-only entity source, implemented by *api.SWAPI.
type Catalog interface {
	List(ctx context.Context, kind models.EntityType) ([]models.Entity, error)
	Details(ctx context.Context, kind models.EntityType, id int64) (*api.Details, error)
}

// Backend persists favorites, implemented by *api.Favorites.
type Backend interface {
	Activate(ctx context.Context, req models.FavoriteRequest) (map[string]any, error)
	Deactivate(ctx context.Context, req models.FavoriteRequest) (map[string]any, error)
}

// Options configures a Store.
type Options struct {
	// UserID is the fixed user the favorites belong to.
	UserID int64
	// RollbackOnFailure undoes optimistic favorite changes the backend
	// rejected. When false, a rejected add stays in the list as StatusFailed
	// and a rejected remove stays removed.
	RollbackOnFailure bool
	// Logger receives action failures and backend responses.
	Logger *zap.Logger
}

// Store is the state container. All methods are safe for concurrent use;
// the lock is never held across network calls, so concurrent fetches of
// the same list resolve last-write-wins.
type Store struct {
	mu    sync.Mutex
	state State

	// pending maps a favorite id to the sequence number of its in-flight
	// add, so a late backend answer only settles the entry it created.
	seq     uint64
	pending map[int64]uint64

	catalog  Catalog
	backend  Backend
	rollback bool
	log      *zap.Logger
}

// New creates a Store with empty lists.
func New(catalog Catalog, backend Backend, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		state: State{
			Vehicles:   []models.Entity{},
			Planets:    []models.Entity{},
			Characters: []models.Entity{},
			Favorites:  []Favorite{},
			UserID:     opts.UserID,
		},
		pending:  make(map[int64]uint64),
		catalog:  catalog,
		backend:  backend,
		rollback: opts.RollbackOnFailure,
		log:      log,
	}
}

// Get returns a snapshot of the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Set shallow-merges p into the current state.
func (s *Store) Set(p Patch) {
	s.apply(func(st State) State { return merge(st, p) })
}

// apply runs a reducer under the lock.
func (s *Store) apply(reduce func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state)
	return s.state
}
