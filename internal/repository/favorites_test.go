package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/HoloFavs/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFavoriteMock(t *testing.T) (*PostgresFavoriteRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresFavoriteRepository(db), mock
}

var favoriteCols = []string{"id", "user_id", "vehicle_id", "character_id", "planet_id", "active", "deactivated_at"}

func ptr(v int64) *int64 { return &v }

func TestFindActive_MatchesNullsExactly(t *testing.T) {
	repo, mock := setupFavoriteMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`vehicle_id IS NOT DISTINCT FROM $2::integer`)).
		WithArgs(int64(1), nil, int64(3), nil).
		WillReturnRows(sqlmock.NewRows(favoriteCols).AddRow(int64(10), int64(1), nil, int64(3), nil, true, nil))

	fav, err := repo.FindActive(context.Background(), 1, models.FavoriteRequest{UserID: 1, CharacterID: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(10), fav.ID)
	assert.Nil(t, fav.VehicleID)
	assert.Nil(t, fav.PlanetID)
	require.NotNil(t, fav.CharacterID)
	assert.Equal(t, int64(3), *fav.CharacterID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActive_NotFound(t *testing.T) {
	repo, mock := setupFavoriteMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM favorites`)).
		WithArgs(int64(1), int64(2), int64(2), int64(2)).
		WillReturnRows(sqlmock.NewRows(favoriteCols))

	_, err := repo.FindActive(context.Background(), 1, models.FavoriteRequest{
		UserID: 1, VehicleID: ptr(2), CharacterID: ptr(2), PlanetID: ptr(2),
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFindActive_Error(t *testing.T) {
	repo, mock := setupFavoriteMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM favorites`)).
		WillReturnError(errors.New("conn reset"))

	_, err := repo.FindActive(context.Background(), 1, models.FavoriteRequest{UserID: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestFavoriteCreate(t *testing.T) {
	repo, mock := setupFavoriteMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO favorites`)).
		WithArgs(int64(1), int64(4), nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	fav, err := repo.Create(context.Background(), 1, models.FavoriteRequest{UserID: 1, VehicleID: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, int64(5), fav.ID)
	assert.Equal(t, int64(1), fav.UserID)
	assert.True(t, fav.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteCreate_ConstraintErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"missing entity", &pq.Error{Code: "23503"}, models.ErrNotFound},
		{"duplicate active favorite", &pq.Error{Code: "23505"}, models.ErrAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupFavoriteMock(t)

			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO favorites`)).
				WithArgs(int64(1), nil, int64(99), nil).
				WillReturnError(tt.err)

			_, err := repo.Create(context.Background(), 1, models.FavoriteRequest{UserID: 1, CharacterID: ptr(99)})
			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFavoriteCreate_OtherError(t *testing.T) {
	repo, mock := setupFavoriteMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO favorites`)).
		WillReturnError(errors.New("conn reset"))

	_, err := repo.Create(context.Background(), 1, models.FavoriteRequest{UserID: 1, PlanetID: ptr(2)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
	assert.NotErrorIs(t, err, models.ErrAlreadyExists)
}

func TestFavoriteDeactivate(t *testing.T) {
	repo, mock := setupFavoriteMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE favorites SET active = false, deactivated_at = now()`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE favorites SET active = false`)).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Deactivate(context.Background(), 5))
	assert.ErrorIs(t, repo.Deactivate(context.Background(), 6), models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActive(t *testing.T) {
	repo, mock := setupFavoriteMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM favorites WHERE user_id = $1 AND active ORDER BY id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(favoriteCols).
			AddRow(int64(1), int64(1), int64(4), nil, nil, true, nil).
			AddRow(int64(2), int64(1), nil, nil, int64(1), true, time.Time{}))

	favs, err := repo.ListActive(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, int64(4), *favs[0].VehicleID)
	assert.Equal(t, int64(1), *favs[1].PlanetID)
	assert.Nil(t, favs[0].DeactivatedAt)
}

func TestListActive_ScanError(t *testing.T) {
	repo, mock := setupFavoriteMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM favorites WHERE user_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	_, err := repo.ListActive(context.Background(), 1)
	assert.Error(t, err)
}
