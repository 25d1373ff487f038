package server

import (
	"context"

	"filmorate/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockFilmService struct{ mock.Mock }

func (m *mockFilmService) AddFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	args := m.Called(ctx, film)
	return filmOrNil(args.Get(0)), args.Error(1)
}
func (m *mockFilmService) UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	args := m.Called(ctx, film)
	return filmOrNil(args.Get(0)), args.Error(1)
}
func (m *mockFilmService) DeleteFilm(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockFilmService) GetFilm(ctx context.Context, id uint) (*models.Film, error) {
	args := m.Called(ctx, id)
	return filmOrNil(args.Get(0)), args.Error(1)
}
func (m *mockFilmService) ListFilms(ctx context.Context) ([]models.Film, error) {
	args := m.Called(ctx)
	films, _ := args.Get(0).([]models.Film)
	return films, args.Error(1)
}
func (m *mockFilmService) AddLike(ctx context.Context, filmID, userID uint) error {
	return m.Called(ctx, filmID, userID).Error(0)
}
func (m *mockFilmService) RemoveLike(ctx context.Context, filmID, userID uint) error {
	return m.Called(ctx, filmID, userID).Error(0)
}
func (m *mockFilmService) PopularFilms(ctx context.Context, count int) ([]models.Film, error) {
	args := m.Called(ctx, count)
	films, _ := args.Get(0).([]models.Film)
	return films, args.Error(1)
}

func filmOrNil(v interface{}) *models.Film {
	f, _ := v.(*models.Film)
	return f
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	return userOrNil(args.Get(0)), args.Error(1)
}
func (m *mockUserService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	return userOrNil(args.Get(0)), args.Error(1)
}
func (m *mockUserService) DeleteUser(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}
func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}
func (m *mockUserService) AddFriend(ctx context.Context, userID, friendID uint) error {
	return m.Called(ctx, userID, friendID).Error(0)
}
func (m *mockUserService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	return m.Called(ctx, userID, friendID).Error(0)
}
func (m *mockUserService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}
func (m *mockUserService) GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	args := m.Called(ctx, userID, otherID)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func userOrNil(v interface{}) *models.User {
	u, _ := v.(*models.User)
	return u
}

type mockGenreService struct{ mock.Mock }

func (m *mockGenreService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	genres, _ := args.Get(0).([]models.Genre)
	return genres, args.Error(1)
}
func (m *mockGenreService) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*models.Genre)
	return g, args.Error(1)
}
func (m *mockGenreService) CreateGenre(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	args := m.Called(ctx, genre)
	g, _ := args.Get(0).(*models.Genre)
	return g, args.Error(1)
}
func (m *mockGenreService) UpdateGenre(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	args := m.Called(ctx, genre)
	g, _ := args.Get(0).(*models.Genre)
	return g, args.Error(1)
}

type mockMpaService struct{ mock.Mock }

func (m *mockMpaService) ListMpa(ctx context.Context) ([]models.Mpa, error) {
	args := m.Called(ctx)
	ratings, _ := args.Get(0).([]models.Mpa)
	return ratings, args.Error(1)
}
func (m *mockMpaService) GetMpa(ctx context.Context, id uint) (*models.Mpa, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Mpa)
	return r, args.Error(1)
}
func (m *mockMpaService) CreateMpa(ctx context.Context, mpa *models.Mpa) (*models.Mpa, error) {
	args := m.Called(ctx, mpa)
	r, _ := args.Get(0).(*models.Mpa)
	return r, args.Error(1)
}
func (m *mockMpaService) UpdateMpa(ctx context.Context, mpa *models.Mpa) (*models.Mpa, error) {
	args := m.Called(ctx, mpa)
	r, _ := args.Get(0).(*models.Mpa)
	return r, args.Error(1)
}
