package repository

import (
	"context"
	"errors"

	"filmorate/internal/database"
	"filmorate/internal/models"
	"filmorate/internal/observability"

	"gorm.io/gorm"
)

// GenreRepository defines persistence operations for genres.
type GenreRepository interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id uint) (*models.Genre, error)
	// GetByIDs returns the genres that exist among ids, ordered by id. Unknown ids are
	// silently dropped; the caller decides how to treat them.
	GetByIDs(ctx context.Context, ids []uint) ([]models.Genre, error)
	Create(ctx context.Context, genre *models.Genre) error
	Update(ctx context.Context, genre *models.Genre) error
}

// MpaRepository defines persistence operations for MPA ratings.
type MpaRepository interface {
	List(ctx context.Context) ([]models.Mpa, error)
	GetByID(ctx context.Context, id uint) (*models.Mpa, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Mpa, error)
	Create(ctx context.Context, mpa *models.Mpa) error
	Update(ctx context.Context, mpa *models.Mpa) error
}

type genreRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewGenreRepository returns a new GenreRepository implementation.
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db, log: observability.NewRepoLogger("genres")}
}

func (r *genreRepository) List(ctx context.Context) ([]models.Genre, error) {
	genres := []models.Genre{}
	if err := r.db.WithContext(ctx).Order("id").Find(&genres).Error; err != nil {
		return nil, failure(ctx, r.log, "list", err)
	}
	return genres, nil
}

func (r *genreRepository) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Genre", id)
		}
		return nil, failure(ctx, r.log, "get", err)
	}
	return &genre, nil
}

func (r *genreRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Genre, error) {
	genres := []models.Genre{}
	if len(ids) == 0 {
		return genres, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", distinct(ids)).Order("id").Find(&genres).Error; err != nil {
		return nil, failure(ctx, r.log, "get_many", err)
	}
	return genres, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.NewConflictError("Genre already exists")
		}
		return failure(ctx, r.log, "create", err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"genre_id": genre.ID})
	return nil
}

func (r *genreRepository) Update(ctx context.Context, genre *models.Genre) error {
	if err := updateName(ctx, r.db, &models.Genre{}, genre.ID, genre.Name); err != nil {
		if models.IsNotFound(err) {
			return models.NewNotFoundError("Genre", genre.ID)
		}
		return failure(ctx, r.log, "update", err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"genre_id": genre.ID})
	return nil
}

type mpaRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewMpaRepository returns a new MpaRepository implementation.
func NewMpaRepository(db *gorm.DB) MpaRepository {
	return &mpaRepository{db: db, log: observability.NewRepoLogger("mpa_ratings")}
}

func (r *mpaRepository) List(ctx context.Context) ([]models.Mpa, error) {
	ratings := []models.Mpa{}
	if err := r.db.WithContext(ctx).Order("id").Find(&ratings).Error; err != nil {
		return nil, failure(ctx, r.log, "list", err)
	}
	return ratings, nil
}

func (r *mpaRepository) GetByID(ctx context.Context, id uint) (*models.Mpa, error) {
	var mpa models.Mpa
	if err := r.db.WithContext(ctx).First(&mpa, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("MPA rating", id)
		}
		return nil, failure(ctx, r.log, "get", err)
	}
	return &mpa, nil
}

func (r *mpaRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Mpa, error) {
	ratings := []models.Mpa{}
	if len(ids) == 0 {
		return ratings, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", distinct(ids)).Order("id").Find(&ratings).Error; err != nil {
		return nil, failure(ctx, r.log, "get_many", err)
	}
	return ratings, nil
}

func (r *mpaRepository) Create(ctx context.Context, mpa *models.Mpa) error {
	if err := r.db.WithContext(ctx).Create(mpa).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.NewConflictError("MPA rating already exists")
		}
		return failure(ctx, r.log, "create", err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"mpa_id": mpa.ID})
	return nil
}

func (r *mpaRepository) Update(ctx context.Context, mpa *models.Mpa) error {
	if err := updateName(ctx, r.db, &models.Mpa{}, mpa.ID, mpa.Name); err != nil {
		if models.IsNotFound(err) {
			return models.NewNotFoundError("MPA rating", mpa.ID)
		}
		return failure(ctx, r.log, "update", err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"mpa_id": mpa.ID})
	return nil
}

// updateName renames one reference row, reporting a not-found AppError when no row matched.
func updateName(ctx context.Context, db *gorm.DB, model interface{}, id uint, name string) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Reference", id)
	}
	return nil
}
