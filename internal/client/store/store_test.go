package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/atinyakov/HoloFavs/internal/client/api"
	"github.com/atinyakov/HoloFavs/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeCatalog struct {
	lists      map[models.EntityType][]models.Entity
	listErr    map[models.EntityType]error
	details    *api.Details
	detailsErr error
}

func (f *fakeCatalog) List(_ context.Context, kind models.EntityType) ([]models.Entity, error) {
	if err := f.listErr[kind]; err != nil {
		return nil, err
	}
	return f.lists[kind], nil
}

func (f *fakeCatalog) Details(context.Context, models.EntityType, int64) (*api.Details, error) {
	return f.details, f.detailsErr
}

type fakeBackend struct {
	mu            sync.Mutex
	activated     []models.FavoriteRequest
	deactivated   []models.FavoriteRequest
	activateErr   error
	deactivateErr error
	// inFlight runs while the request is "on the wire".
	inFlight func()
}

func (f *fakeBackend) Activate(_ context.Context, req models.FavoriteRequest) (map[string]any, error) {
	if f.inFlight != nil {
		f.inFlight()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activated = append(f.activated, req)
	if f.activateErr != nil {
		return nil, f.activateErr
	}
	return map[string]any{"message": "favorite added"}, nil
}

func (f *fakeBackend) Deactivate(_ context.Context, req models.FavoriteRequest) (map[string]any, error) {
	if f.inFlight != nil {
		f.inFlight()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deactivated = append(f.deactivated, req)
	if f.deactivateErr != nil {
		return nil, f.deactivateErr
	}
	return map[string]any{"message": "favorite removed"}, nil
}

func ptr(v int64) *int64 { return &v }

func newTestStore(c *fakeCatalog, b *fakeBackend, rollback bool) *Store {
	if c == nil {
		c = &fakeCatalog{}
	}
	if b == nil {
		b = &fakeBackend{}
	}
	return New(c, b, Options{UserID: 1, RollbackOnFailure: rollback, Logger: zap.NewNop()})
}

func TestNew_EmptyState(t *testing.T) {
	s := newTestStore(nil, nil, false)
	st := s.Get()

	assert.Empty(t, st.Characters)
	assert.Empty(t, st.Vehicles)
	assert.Empty(t, st.Planets)
	assert.Empty(t, st.Favorites)
	assert.Nil(t, st.Details)
	assert.Equal(t, int64(1), st.UserID)
}

func TestSet_ShallowMerge(t *testing.T) {
	s := newTestStore(nil, nil, false)
	planets := []models.Entity{{"uid": "1", "name": "Tatooine"}}
	s.Set(Patch{Planets: &planets})

	favs := []Favorite{{ID: 3, Name: "R2-D2", Type: models.People}}
	s.Set(Patch{Favorites: &favs})

	st := s.Get()
	assert.Equal(t, planets, st.Planets)
	assert.Equal(t, favs, st.Favorites)
	assert.Empty(t, st.Characters)
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := newTestStore(nil, nil, false)
	favs := []Favorite{{ID: 1, Name: "Luke Skywalker", Type: models.People}}
	details := models.Entity{"name": "Luke"}
	s.Set(Patch{Favorites: &favs, Details: &details})

	snap := s.Get()
	snap.Favorites[0].Name = "changed"
	snap.Details["name"] = "changed"

	st := s.Get()
	assert.Equal(t, "Luke Skywalker", st.Favorites[0].Name)
	assert.Equal(t, "Luke", st.Details["name"])
}

func TestFetchLists(t *testing.T) {
	people := []models.Entity{{"uid": "1", "name": "Luke Skywalker"}}
	vehicles := []models.Entity{{"uid": "4", "name": "Sand Crawler"}}
	planets := []models.Entity{{"uid": "1", "name": "Tatooine"}, {"uid": "2", "name": "Alderaan"}}
	c := &fakeCatalog{lists: map[models.EntityType][]models.Entity{
		models.People:   people,
		models.Vehicles: vehicles,
		models.Planets:  planets,
	}}
	s := newTestStore(c, nil, false)

	stale := []models.Entity{{"uid": "99", "name": "stale"}}
	s.Set(Patch{Characters: &stale, Vehicles: &stale, Planets: &stale})

	ctx := context.Background()
	require.NoError(t, s.FetchCharacters(ctx))
	require.NoError(t, s.FetchVehicles(ctx))
	require.NoError(t, s.FetchPlanets(ctx))

	st := s.Get()
	assert.Equal(t, people, st.Characters)
	assert.Equal(t, vehicles, st.Vehicles)
	assert.Equal(t, planets, st.Planets)
}

func TestFetchList_FailureKeepsState(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	c := &fakeCatalog{listErr: map[models.EntityType]error{models.People: errors.New("network down")}}
	s := New(c, &fakeBackend{}, Options{UserID: 1, Logger: zap.New(core)})

	prior := []models.Entity{{"uid": "1", "name": "Luke Skywalker"}}
	s.Set(Patch{Characters: &prior})

	err := s.FetchCharacters(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
	assert.Equal(t, prior, s.Get().Characters)
	assert.Equal(t, 1, logs.FilterMessage("failed to fetch list").Len())
}

func TestFetchAll_PartialFailure(t *testing.T) {
	wantErr := errors.New("planets unavailable")
	vehicles := []models.Entity{{"uid": "4"}}
	people := []models.Entity{{"uid": "1"}}
	c := &fakeCatalog{
		lists: map[models.EntityType][]models.Entity{
			models.People:   people,
			models.Vehicles: vehicles,
		},
		listErr: map[models.EntityType]error{models.Planets: wantErr},
	}
	s := newTestStore(c, nil, false)

	err := s.FetchAll(context.Background())
	require.ErrorIs(t, err, wantErr)

	st := s.Get()
	assert.Equal(t, people, st.Characters)
	assert.Equal(t, vehicles, st.Vehicles)
	assert.Empty(t, st.Planets)
}

func TestFetchDetails(t *testing.T) {
	c := &fakeCatalog{details: &api.Details{
		Properties:  models.Entity{"name": "Luke"},
		Description: "desc",
	}}
	s := newTestStore(c, nil, false)

	require.NoError(t, s.FetchDetails(context.Background(), models.People, 1))

	want := models.Entity{"name": "Luke", "description": "desc"}
	if diff := cmp.Diff(want, s.Get().Details); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchDetails_NoResultKeepsDetails(t *testing.T) {
	s := newTestStore(&fakeCatalog{}, nil, false)
	prior := models.Entity{"name": "Leia", "description": "princess"}
	s.Set(Patch{Details: &prior})

	require.NoError(t, s.FetchDetails(context.Background(), models.People, 404))
	assert.Equal(t, prior, s.Get().Details)
}

func TestFetchDetails_ErrorKeepsDetails(t *testing.T) {
	wantErr := api.ErrMalformedResponse
	s := newTestStore(&fakeCatalog{detailsErr: wantErr}, nil, false)
	prior := models.Entity{"name": "Leia"}
	s.Set(Patch{Details: &prior})

	err := s.FetchDetails(context.Background(), models.Planets, 1)
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, prior, s.Get().Details)
}

func TestAddFavorite_Luke(t *testing.T) {
	b := &fakeBackend{}
	s := newTestStore(nil, b, false)

	var during []Favorite
	b.inFlight = func() { during = s.Get().Favorites }

	require.NoError(t, s.AddFavorite(context.Background(), 1, "Luke Skywalker", models.People))

	assert.Equal(t, []Favorite{{ID: 1, Name: "Luke Skywalker", Type: models.People, Status: StatusPending}}, during)
	assert.Equal(t, []Favorite{{ID: 1, Name: "Luke Skywalker", Type: models.People, Status: StatusConfirmed}}, s.Get().Favorites)

	require.Len(t, b.activated, 1)
	want := models.FavoriteRequest{UserID: 1, CharacterID: ptr(1)}
	if diff := cmp.Diff(want, b.activated[0]); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestAddFavorite_PayloadPerType(t *testing.T) {
	tests := []struct {
		kind models.EntityType
		want models.FavoriteRequest
	}{
		{models.People, models.FavoriteRequest{UserID: 1, CharacterID: ptr(5)}},
		{models.Vehicles, models.FavoriteRequest{UserID: 1, VehicleID: ptr(5)}},
		{models.Planets, models.FavoriteRequest{UserID: 1, PlanetID: ptr(5)}},
		{models.EntityType("starships"), models.FavoriteRequest{UserID: 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			b := &fakeBackend{}
			s := newTestStore(nil, b, false)
			require.NoError(t, s.AddFavorite(context.Background(), 5, "x", tt.kind))
			require.Len(t, b.activated, 1)
			assert.Empty(t, cmp.Diff(tt.want, b.activated[0]))
		})
	}
}

func TestAddFavorite_DuplicateIsNoop(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	b := &fakeBackend{}
	s := New(&fakeCatalog{}, b, Options{UserID: 1, Logger: zap.New(core)})
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, 1, "Luke Skywalker", models.People))
	err := s.AddFavorite(ctx, 1, "Luke Skywalker", models.People)
	require.ErrorIs(t, err, ErrFavoriteExists)

	// the id is unique across types
	err = s.AddFavorite(ctx, 1, "Sand Crawler", models.Vehicles)
	require.ErrorIs(t, err, ErrFavoriteExists)

	assert.Len(t, s.Get().Favorites, 1)
	assert.Len(t, b.activated, 1)
	assert.Equal(t, 2, logs.FilterMessage("favorite already in list").Len())
}

func TestAddFavorite_ConcurrentSameID(t *testing.T) {
	b := &fakeBackend{}
	s := newTestStore(nil, b, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddFavorite(context.Background(), 7, "Obi-Wan Kenobi", models.People)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Get().Favorites, 1)
	assert.Len(t, b.activated, 1)
}

func TestAddFavorite_BackendFailure(t *testing.T) {
	t.Run("no rollback", func(t *testing.T) {
		s := newTestStore(nil, &fakeBackend{activateErr: errors.New("backend down")}, false)

		err := s.AddFavorite(context.Background(), 2, "C-3PO", models.People)
		require.Error(t, err)
		assert.Equal(t, []Favorite{{ID: 2, Name: "C-3PO", Type: models.People, Status: StatusFailed}}, s.Get().Favorites)
	})

	t.Run("rollback", func(t *testing.T) {
		s := newTestStore(nil, &fakeBackend{activateErr: errors.New("backend down")}, true)

		err := s.AddFavorite(context.Background(), 2, "C-3PO", models.People)
		require.Error(t, err)
		assert.Empty(t, s.Get().Favorites)
	})
}

func TestRemoveFavorite(t *testing.T) {
	b := &fakeBackend{}
	s := newTestStore(nil, b, false)
	favs := []Favorite{
		{ID: 1, Name: "Luke Skywalker", Type: models.People, Status: StatusConfirmed},
		{ID: 2, Name: "Alderaan", Type: models.Planets, Status: StatusConfirmed},
	}
	s.Set(Patch{Favorites: &favs})

	var during []Favorite
	b.inFlight = func() { during = s.Get().Favorites }

	require.NoError(t, s.RemoveFavorite(context.Background(), 1))

	assert.Equal(t, favs[1:], during)
	assert.Equal(t, favs[1:], s.Get().Favorites)

	require.Len(t, b.deactivated, 1)
	want := models.FavoriteRequest{UserID: 1, VehicleID: ptr(1), CharacterID: ptr(1), PlanetID: ptr(1)}
	assert.Empty(t, cmp.Diff(want, b.deactivated[0]))
}

func TestRemoveFavorite_BackendFailure(t *testing.T) {
	favs := []Favorite{{ID: 1, Name: "Luke Skywalker", Type: models.People, Status: StatusConfirmed}}

	t.Run("no rollback", func(t *testing.T) {
		s := newTestStore(nil, &fakeBackend{deactivateErr: errors.New("backend down")}, false)
		s.Set(Patch{Favorites: &favs})

		require.Error(t, s.RemoveFavorite(context.Background(), 1))
		assert.Empty(t, s.Get().Favorites)
	})

	t.Run("rollback", func(t *testing.T) {
		s := newTestStore(nil, &fakeBackend{deactivateErr: errors.New("backend down")}, true)
		s.Set(Patch{Favorites: &favs})

		require.Error(t, s.RemoveFavorite(context.Background(), 1))
		assert.Equal(t, favs, s.Get().Favorites)
	})
}

func TestRemoveFavorite_UnknownIDStillCallsBackend(t *testing.T) {
	b := &fakeBackend{}
	s := newTestStore(nil, b, true)

	require.NoError(t, s.RemoveFavorite(context.Background(), 42))
	assert.Len(t, b.deactivated, 1)
	assert.Empty(t, s.Get().Favorites)
}

func TestTask(t *testing.T) {
	wantErr := errors.New("boom")
	task := Go(context.Background(), func(context.Context) error { return wantErr })
	require.ErrorIs(t, task.Wait(), wantErr)

	select {
	case <-task.Done():
	default:
		t.Fatal("Done must be closed after Wait returns")
	}
}

func TestTask_WaitContext(t *testing.T) {
	release := make(chan struct{})
	task := Go(context.Background(), func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, task.WaitContext(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, task.WaitContext(context.Background()))
}

func TestTask_FetchAll(t *testing.T) {
	c := &fakeCatalog{lists: map[models.EntityType][]models.Entity{
		models.People: {{"uid": "1"}},
	}}
	s := newTestStore(c, nil, false)

	require.NoError(t, Go(context.Background(), s.FetchAll).Wait())
	assert.Len(t, s.Get().Characters, 1)
}

func TestSet_DetailsNotAliased(t *testing.T) {
	s := newTestStore(nil, nil, false)
	details := models.Entity{"name": "Leia"}
	s.Set(Patch{Details: &details})

	details["name"] = "changed"
	assert.Equal(t, models.Entity{"name": "Leia"}, s.Get().Details)
}

// gatedBackend hands every Activate to the test, which decides when and how
// it completes.
type gatedBackend struct {
	calls chan chan error
}

func (b *gatedBackend) Activate(_ context.Context, _ models.FavoriteRequest) (map[string]any, error) {
	reply := make(chan error)
	b.calls <- reply
	if err := <-reply; err != nil {
		return nil, err
	}
	return map[string]any{"message": "favorite added"}, nil
}

func (b *gatedBackend) Deactivate(context.Context, models.FavoriteRequest) (map[string]any, error) {
	return map[string]any{"message": "favorite removed"}, nil
}

func TestAddFavorite_StaleAnswerLeavesReAddPending(t *testing.T) {
	for _, rollback := range []bool{false, true} {
		t.Run(fmt.Sprintf("rollback=%v", rollback), func(t *testing.T) {
			b := &gatedBackend{calls: make(chan chan error)}
			s := New(&fakeCatalog{}, b, Options{UserID: 1, RollbackOnFailure: rollback, Logger: zap.NewNop()})
			ctx := context.Background()
			add := func(ctx context.Context) error {
				return s.AddFavorite(ctx, 1, "Luke Skywalker", models.People)
			}

			first := Go(ctx, add)
			firstReply := <-b.calls

			require.NoError(t, s.RemoveFavorite(ctx, 1))
			assert.Empty(t, s.Get().Favorites)

			second := Go(ctx, add)
			secondReply := <-b.calls

			firstReply <- errors.New("backend down")
			require.Error(t, first.Wait())
			pending := []Favorite{{ID: 1, Name: "Luke Skywalker", Type: models.People, Status: StatusPending}}
			assert.Equal(t, pending, s.Get().Favorites)

			secondReply <- nil
			require.NoError(t, second.Wait())
			assert.Equal(t, StatusConfirmed, s.Get().Favorites[0].Status)
		})
	}
}

func TestAddFavorite_StaleSuccessDoesNotConfirmReAdd(t *testing.T) {
	b := &gatedBackend{calls: make(chan chan error)}
	s := New(&fakeCatalog{}, b, Options{UserID: 1, Logger: zap.NewNop()})
	ctx := context.Background()
	add := func(ctx context.Context) error {
		return s.AddFavorite(ctx, 1, "Luke Skywalker", models.People)
	}

	first := Go(ctx, add)
	firstReply := <-b.calls
	require.NoError(t, s.RemoveFavorite(ctx, 1))
	second := Go(ctx, add)
	secondReply := <-b.calls

	firstReply <- nil
	require.NoError(t, first.Wait())
	assert.Equal(t, StatusPending, s.Get().Favorites[0].Status)

	secondReply <- errors.New("backend down")
	require.Error(t, second.Wait())
	assert.Equal(t, StatusFailed, s.Get().Favorites[0].Status)
}
