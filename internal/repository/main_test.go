package repository

import (
	"context"
	"testing"
	"time"

	"filmorate/internal/database"
	"filmorate/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB returns an isolated in-memory SQLite database with the full schema and
// the standard genres and MPA ratings.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	genres := []models.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
	require.NoError(t, db.Create(&genres).Error)

	ratings := []models.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
	require.NoError(t, db.Create(&ratings).Error)

	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func newFilm(name string, mpaID uint, genreIDs ...uint) *models.Film {
	genres := make([]models.Genre, 0, len(genreIDs))
	for _, id := range genreIDs {
		genres = append(genres, models.Genre{ID: id})
	}
	return &models.Film{
		Name:        name,
		Description: name + " description",
		ReleaseDate: models.NewDate(2000, time.January, 1),
		Duration:    120,
		Mpa:         &models.Mpa{ID: mpaID},
		Genres:      genres,
	}
}

func mustCreateUser(t *testing.T, repo UserRepository, login string) *models.User {
	t.Helper()
	u := &models.User{Email: login + "@example.com", Login: login, Name: login}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}
