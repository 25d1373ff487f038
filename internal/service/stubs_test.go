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

// filmRepoStub is a stub for repository.FilmRepository.
type filmRepoStub struct {
	createFn     func(context.Context, *models.Film) error
	updateFn     func(context.Context, *models.Film) error
	deleteFn     func(context.Context, uint) error
	getByIDFn    func(context.Context, uint) (*models.Film, error)
	listFn       func(context.Context) ([]models.Film, error)
	popularFn    func(context.Context, int) ([]models.Film, error)
	existsFn     func(context.Context, uint) (bool, error)
	addLikeFn    func(context.Context, uint, uint) error
	removeLikeFn func(context.Context, uint, uint) error
}

func (s *filmRepoStub) Create(ctx context.Context, film *models.Film) error {
	return s.createFn(ctx, film)
}
func (s *filmRepoStub) Update(ctx context.Context, film *models.Film) error {
	return s.updateFn(ctx, film)
}
func (s *filmRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *filmRepoStub) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	return s.getByIDFn(ctx, id)
}
func (s *filmRepoStub) List(ctx context.Context) ([]models.Film, error) {
	return s.listFn(ctx)
}
func (s *filmRepoStub) Popular(ctx context.Context, count int) ([]models.Film, error) {
	return s.popularFn(ctx, count)
}
func (s *filmRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *filmRepoStub) AddLike(ctx context.Context, filmID, userID uint) error {
	return s.addLikeFn(ctx, filmID, userID)
}
func (s *filmRepoStub) RemoveLike(ctx context.Context, filmID, userID uint) error {
	return s.removeLikeFn(ctx, filmID, userID)
}

func noopFilmRepo() *filmRepoStub {
	return &filmRepoStub{
		createFn:     func(_ context.Context, f *models.Film) error { f.ID = 1; return nil },
		updateFn:     func(_ context.Context, _ *models.Film) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Film, error) { return &models.Film{ID: id}, nil },
		listFn:       func(_ context.Context) ([]models.Film, error) { return []models.Film{}, nil },
		popularFn:    func(_ context.Context, _ int) ([]models.Film, error) { return []models.Film{}, nil },
		existsFn:     func(_ context.Context, _ uint) (bool, error) { return true, nil },
		addLikeFn:    func(_ context.Context, _, _ uint) error { return nil },
		removeLikeFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// genreRepoStub is a stub for repository.GenreRepository.
type genreRepoStub struct {
	listFn     func(context.Context) ([]models.Genre, error)
	getByIDFn  func(context.Context, uint) (*models.Genre, error)
	getByIDsFn func(context.Context, []uint) ([]models.Genre, error)
	createFn   func(context.Context, *models.Genre) error
	updateFn   func(context.Context, *models.Genre) error
}

func (s *genreRepoStub) List(ctx context.Context) ([]models.Genre, error) {
	return s.listFn(ctx)
}
func (s *genreRepoStub) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	return s.getByIDFn(ctx, id)
}
func (s *genreRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Genre, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *genreRepoStub) Create(ctx context.Context, genre *models.Genre) error {
	return s.createFn(ctx, genre)
}
func (s *genreRepoStub) Update(ctx context.Context, genre *models.Genre) error {
	return s.updateFn(ctx, genre)
}

// genreRepoWith resolves exactly the given genre ids.
func genreRepoWith(known ...uint) *genreRepoStub {
	set := make(map[uint]bool, len(known))
	for _, id := range known {
		set[id] = true
	}
	return &genreRepoStub{
		listFn: func(_ context.Context) ([]models.Genre, error) { return []models.Genre{}, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Genre, error) {
			if !set[id] {
				return nil, models.NewNotFoundError("Genre", id)
			}
			return &models.Genre{ID: id}, nil
		},
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Genre, error) {
			out := []models.Genre{}
			for _, id := range ids {
				if set[id] {
					out = append(out, models.Genre{ID: id})
				}
			}
			return out, nil
		},
		createFn: func(_ context.Context, g *models.Genre) error { g.ID = 7; return nil },
		updateFn: func(_ context.Context, _ *models.Genre) error { return nil },
	}
}

// mpaRepoStub is a stub for repository.MpaRepository.
type mpaRepoStub struct {
	listFn     func(context.Context) ([]models.Mpa, error)
	getByIDFn  func(context.Context, uint) (*models.Mpa, error)
	getByIDsFn func(context.Context, []uint) ([]models.Mpa, error)
	createFn   func(context.Context, *models.Mpa) error
	updateFn   func(context.Context, *models.Mpa) error
}

func (s *mpaRepoStub) List(ctx context.Context) ([]models.Mpa, error) {
	return s.listFn(ctx)
}
func (s *mpaRepoStub) GetByID(ctx context.Context, id uint) (*models.Mpa, error) {
	return s.getByIDFn(ctx, id)
}
func (s *mpaRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Mpa, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *mpaRepoStub) Create(ctx context.Context, mpa *models.Mpa) error {
	return s.createFn(ctx, mpa)
}
func (s *mpaRepoStub) Update(ctx context.Context, mpa *models.Mpa) error {
	return s.updateFn(ctx, mpa)
}

// mpaRepoWith resolves MPA ids 1 through highest.
func mpaRepoWith(highest uint) *mpaRepoStub {
	return &mpaRepoStub{
		listFn: func(_ context.Context) ([]models.Mpa, error) { return []models.Mpa{}, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Mpa, error) {
			if id == 0 || id > highest {
				return nil, models.NewNotFoundError("MPA rating", id)
			}
			return &models.Mpa{ID: id}, nil
		},
		getByIDsFn: func(_ context.Context, _ []uint) ([]models.Mpa, error) { return nil, nil },
		createFn:   func(_ context.Context, m *models.Mpa) error { m.ID = 6; return nil },
		updateFn:   func(_ context.Context, _ *models.Mpa) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	getByIDFn          func(context.Context, uint) (*models.User, error)
	listFn             func(context.Context) ([]models.User, error)
	existingIDsFn      func(context.Context, []uint) ([]uint, error)
	addFriendFn        func(context.Context, uint, uint) error
	removeFriendFn     func(context.Context, uint, uint) error
	getFriendsFn       func(context.Context, uint) ([]models.User, error)
	getCommonFriendsFn func(context.Context, uint, uint) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	return s.existingIDsFn(ctx, ids)
}
func (s *userRepoStub) AddFriend(ctx context.Context, userID, friendID uint) error {
	return s.addFriendFn(ctx, userID, friendID)
}
func (s *userRepoStub) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	return s.removeFriendFn(ctx, userID, friendID)
}
func (s *userRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}
func (s *userRepoStub) GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	return s.getCommonFriendsFn(ctx, userID, otherID)
}

// userRepoWith knows exactly the given user ids.
func userRepoWith(known ...uint) *userRepoStub {
	set := make(map[uint]bool, len(known))
	for _, id := range known {
		set[id] = true
	}
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			if !set[id] {
				return nil, models.NewNotFoundError("User", id)
			}
			return &models.User{ID: id}, nil
		},
		listFn: func(_ context.Context) ([]models.User, error) { return []models.User{}, nil },
		existingIDsFn: func(_ context.Context, ids []uint) ([]uint, error) {
			out := []uint{}
			for _, id := range ids {
				if set[id] {
					out = append(out, id)
				}
			}
			return out, nil
		},
		addFriendFn:        func(_ context.Context, _, _ uint) error { return nil },
		removeFriendFn:     func(_ context.Context, _, _ uint) error { return nil },
		getFriendsFn:       func(_ context.Context, _ uint) ([]models.User, error) { return []models.User{}, nil },
		getCommonFriendsFn: func(_ context.Context, _, _ uint) ([]models.User, error) { return []models.User{}, nil },
	}
}

func validFilm() *models.Film {
	return &models.Film{
		Name:        "Blade Runner",
		Description: "Replicants in Los Angeles",
		ReleaseDate: models.NewDate(1982, time.June, 25),
		Duration:    117,
		Mpa:         &models.Mpa{ID: 4},
		Genres:      []models.Genre{{ID: 4}, {ID: 2}},
	}
}

func validUser() *models.User {
	return &models.User{
		Email:    "deckard@example.com",
		Login:    "deckard",
		Name:     "Rick Deckard",
		Birthday: models.NewDate(1980, time.January, 1),
	}
}

// assertAppError asserts that err is an AppError carrying code.
func assertAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}
