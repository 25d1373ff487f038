package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"filmorate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilmService(films *filmRepoStub) *FilmService {
	return NewFilmService(films, genreRepoWith(1, 2, 3, 4, 5, 6), mpaRepoWith(5), userRepoWith(1, 2, 3))
}

func TestFilmService_AddFilm(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid film without likes", func(t *testing.T) {
		films := noopFilmRepo()
		var stored *models.Film
		films.createFn = func(_ context.Context, f *models.Film) error {
			stored = f
			f.ID = 10
			return nil
		}
		svc := newTestFilmService(films)

		in := validFilm()
		in.ID = 99
		in.Likes = []uint{1, 2}
		got, err := svc.AddFilm(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, uint(10), got.ID)
		require.NotNil(t, stored)
		assert.Empty(t, stored.Likes)
	})

	t.Run("release date before the first screening", func(t *testing.T) {
		films := noopFilmRepo()
		films.createFn = func(_ context.Context, _ *models.Film) error {
			t.Fatal("create must not be called")
			return nil
		}
		svc := newTestFilmService(films)

		in := validFilm()
		in.ReleaseDate = models.NewDate(1895, time.December, 27)
		_, err := svc.AddFilm(ctx, in)
		appErr := assertAppError(t, err, models.CodeValidation)
		assert.Contains(t, appErr.Fields, "releaseDate")
	})

	t.Run("unknown mpa", func(t *testing.T) {
		svc := newTestFilmService(noopFilmRepo())
		in := validFilm()
		in.Mpa = &models.Mpa{ID: 9}
		_, err := svc.AddFilm(ctx, in)
		assertAppError(t, err, models.CodeNotFound)
	})

	t.Run("all missing genres reported together", func(t *testing.T) {
		films := noopFilmRepo()
		films.createFn = func(_ context.Context, _ *models.Film) error {
			t.Fatal("create must not be called")
			return nil
		}
		svc := newTestFilmService(films)

		in := validFilm()
		in.Genres = []models.Genre{{ID: 42}, {ID: 1}, {ID: 17}}
		_, err := svc.AddFilm(ctx, in)
		appErr := assertAppError(t, err, models.CodeNotFound)
		assert.Equal(t, "Genre with IDs [17, 42] not found", appErr.Message)
	})

	t.Run("nil body", func(t *testing.T) {
		svc := newTestFilmService(noopFilmRepo())
		_, err := svc.AddFilm(ctx, nil)
		assertAppError(t, err, models.CodeValidation)
	})
}

func TestFilmService_UpdateFilm(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an id", func(t *testing.T) {
		svc := newTestFilmService(noopFilmRepo())
		_, err := svc.UpdateFilm(ctx, validFilm())
		appErr := assertAppError(t, err, models.CodeValidation)
		assert.Equal(t, "id is required", appErr.Fields["id"])
	})

	t.Run("passes likes through after checking users", func(t *testing.T) {
		films := noopFilmRepo()
		var stored *models.Film
		films.updateFn = func(_ context.Context, f *models.Film) error {
			stored = f
			return nil
		}
		svc := newTestFilmService(films)

		in := validFilm()
		in.ID = 5
		in.Likes = []uint{3, 1}
		_, err := svc.UpdateFilm(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 3}, stored.LikeIDs())
	})

	t.Run("unknown liking user", func(t *testing.T) {
		films := noopFilmRepo()
		films.updateFn = func(_ context.Context, _ *models.Film) error {
			t.Fatal("update must not be called")
			return nil
		}
		svc := newTestFilmService(films)

		in := validFilm()
		in.ID = 5
		in.Likes = []uint{1, 77}
		_, err := svc.UpdateFilm(ctx, in)
		appErr := assertAppError(t, err, models.CodeNotFound)
		assert.Equal(t, "User with IDs [77] not found", appErr.Message)
	})

	t.Run("missing film surfaces not found", func(t *testing.T) {
		films := noopFilmRepo()
		films.updateFn = func(_ context.Context, f *models.Film) error {
			return models.NewNotFoundError("Film", f.ID)
		}
		svc := newTestFilmService(films)

		in := validFilm()
		in.ID = 9999
		_, err := svc.UpdateFilm(ctx, in)
		assertAppError(t, err, models.CodeNotFound)
	})
}

func TestFilmService_Likes(t *testing.T) {
	ctx := context.Background()

	t.Run("add like", func(t *testing.T) {
		films := noopFilmRepo()
		var liked [2]uint
		films.addLikeFn = func(_ context.Context, filmID, userID uint) error {
			liked = [2]uint{filmID, userID}
			return nil
		}
		svc := newTestFilmService(films)

		require.NoError(t, svc.AddLike(ctx, 4, 2))
		assert.Equal(t, [2]uint{4, 2}, liked)
	})

	t.Run("missing film", func(t *testing.T) {
		films := noopFilmRepo()
		films.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := newTestFilmService(films)

		err := svc.AddLike(ctx, 4, 2)
		appErr := assertAppError(t, err, models.CodeNotFound)
		assert.Equal(t, "Film with ID 4 not found", appErr.Message)
	})

	t.Run("missing user", func(t *testing.T) {
		svc := newTestFilmService(noopFilmRepo())
		err := svc.RemoveLike(ctx, 4, 50)
		appErr := assertAppError(t, err, models.CodeNotFound)
		assert.Equal(t, "User with ID 50 not found", appErr.Message)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		films := noopFilmRepo()
		films.removeLikeFn = func(_ context.Context, _, _ uint) error {
			return models.NewInternalError(errors.New("disk full"))
		}
		svc := newTestFilmService(films)

		err := svc.RemoveLike(ctx, 4, 2)
		assertAppError(t, err, models.CodeInternal)
	})
}

func TestFilmService_PopularFilms(t *testing.T) {
	ctx := context.Background()
	films := noopFilmRepo()
	var asked int
	films.popularFn = func(_ context.Context, count int) ([]models.Film, error) {
		asked = count
		return []models.Film{{ID: 3}, {ID: 5}}, nil
	}
	svc := newTestFilmService(films)

	got, err := svc.PopularFilms(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, asked)

	for _, count := range []int{0, -3} {
		_, err := svc.PopularFilms(ctx, count)
		assertAppError(t, err, models.CodeValidation)
	}
}

func TestMissingIDs(t *testing.T) {
	assert.Equal(t, []uint{2, 4}, missingIDs([]uint{1, 2, 3, 4}, []uint{3, 1}))
	assert.Nil(t, missingIDs([]uint{1}, []uint{1}))
}
