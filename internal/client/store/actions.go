package store

import (
	"context"
	"fmt"

	"github.com/atinyakov/HoloFavs/internal/client/api"
	"github.com/atinyakov/HoloFavs/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FetchCharacters replaces the characters list with a fresh SWAPI page.
func (s *Store) FetchCharacters(ctx context.Context) error {
	return s.fetchList(ctx, models.People)
}

// FetchVehicles replaces the vehicles list with a fresh SWAPI page.
func (s *Store) FetchVehicles(ctx context.Context) error {
	return s.fetchList(ctx, models.Vehicles)
}

// FetchPlanets replaces the planets list with a fresh SWAPI page.
func (s *Store) FetchPlanets(ctx context.Context) error {
	return s.fetchList(ctx, models.Planets)
}

// FetchAll loads the three lists concurrently. Each list is applied as soon
// as it arrives; one failure does not cancel the others. The first error
// is returned.
func (s *Store) FetchAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.FetchCharacters(ctx) })
	g.Go(func() error { return s.FetchVehicles(ctx) })
	g.Go(func() error { return s.FetchPlanets(ctx) })
	return g.Wait()
}

func (s *Store) fetchList(ctx context.Context, kind models.EntityType) error {
	list, err := s.catalog.List(ctx, kind)
	if err != nil {
		s.log.Error("failed to fetch list", zap.String("kind", string(kind)), zap.Error(err))
		return fmt.Errorf("fetch %s: %w", kind, err)
	}
	s.apply(func(st State) State { return withList(st, kind, list) })
	return nil
}

// FetchDetails loads one entity into the details record. A response
// without a result leaves the record unchanged and is not an error.
func (s *Store) FetchDetails(ctx context.Context, kind models.EntityType, id int64) error {
	d, err := s.catalog.Details(ctx, kind, id)
	if err != nil {
		s.log.Error("failed to fetch details",
			zap.String("kind", string(kind)), zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("fetch %s/%d: %w", kind, id, err)
	}
	if d == nil {
		s.log.Debug("details response has no result", zap.String("kind", string(kind)), zap.Int64("id", id))
		return nil
	}
	s.apply(func(st State) State { return withDetails(st, d) })
	return nil
}

// ensure the concrete clients satisfy the store interfaces.
var (
	_ Catalog = (*api.SWAPI)(nil)
	_ Backend = (*api.Favorites)(nil)
)
