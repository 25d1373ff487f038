package repository

import (
	"context"
	"errors"

	"filmorate/internal/database"
	"filmorate/internal/models"
	"filmorate/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilmRepository defines persistence operations for films and their genre and like
// associations.
type FilmRepository interface {
	// Create inserts the film and its genre links. Likes start empty.
	Create(ctx context.Context, film *models.Film) error
	// Update replaces the scalar fields and resyncs genres and likes to exactly the given sets.
	Update(ctx context.Context, film *models.Film) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	// Popular returns up to count films by like count descending, then id ascending.
	Popular(ctx context.Context, count int) ([]models.Film, error)
	Exists(ctx context.Context, id uint) (bool, error)
	AddLike(ctx context.Context, filmID, userID uint) error
	RemoveLike(ctx context.Context, filmID, userID uint) error
}

type filmRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewFilmRepository returns a new FilmRepository implementation.
func NewFilmRepository(db *gorm.DB) FilmRepository {
	return &filmRepository{db: db, log: observability.NewRepoLogger("films")}
}

func (r *filmRepository) Create(ctx context.Context, film *models.Film) error {
	if film.Mpa != nil {
		film.MpaID = film.Mpa.ID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(film).Error; err != nil {
			return err
		}
		return replaceGenres(tx, film.ID, film.GenreIDs())
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return &models.AppError{Code: models.CodeNotFound, Message: "Referenced MPA rating or genre no longer exists"}
		}
		return failure(ctx, r.log, "create", err)
	}

	r.log.LogCreate(ctx, map[string]interface{}{"film_id": film.ID, "genres": len(film.GenreIDs())})
	return r.reload(ctx, film)
}

func (r *filmRepository) Update(ctx context.Context, film *models.Film) error {
	if film.Mpa != nil {
		film.MpaID = film.Mpa.ID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Film
		if err := tx.Select("id").First(&existing, film.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Film", film.ID)
			}
			return err
		}

		if err := tx.Model(&models.Film{}).Where("id = ?", film.ID).Updates(map[string]interface{}{
			"name":         film.Name,
			"description":  film.Description,
			"release_date": film.ReleaseDate,
			"duration":     film.Duration,
			"mpa_id":       film.MpaID,
		}).Error; err != nil {
			return err
		}

		if err := replaceGenres(tx, film.ID, film.GenreIDs()); err != nil {
			return err
		}
		return replaceLikes(tx, film.ID, film.LikeIDs())
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return &models.AppError{Code: models.CodeNotFound, Message: "Referenced MPA rating, genre or user no longer exists"}
		}
		return failure(ctx, r.log, "update", err)
	}

	r.log.LogUpdate(ctx, map[string]interface{}{"film_id": film.ID, "genres": len(film.GenreIDs()), "likes": film.LikesCount()})
	return r.reload(ctx, film)
}

func (r *filmRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("film_id = ?", id).Delete(&models.FilmGenre{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&models.FilmLike{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Film{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Film", id)
		}
		return nil
	})
	if err != nil {
		return failure(ctx, r.log, "delete", err)
	}

	r.log.LogDelete(ctx, map[string]interface{}{"film_id": id})
	return nil
}

func (r *filmRepository) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	var film models.Film
	db := r.db.WithContext(ctx)
	if err := db.Preload("Mpa").First(&film, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Film", id)
		}
		return nil, failure(ctx, r.log, "get", err)
	}

	films := []models.Film{film}
	if err := attachAssociations(db, films); err != nil {
		return nil, failure(ctx, r.log, "get", err)
	}
	return &films[0], nil
}

func (r *filmRepository) List(ctx context.Context) ([]models.Film, error) {
	films := []models.Film{}
	db := r.db.WithContext(ctx)
	if err := db.Preload("Mpa").Order("id").Find(&films).Error; err != nil {
		return nil, failure(ctx, r.log, "list", err)
	}
	if err := attachAssociations(db, films); err != nil {
		return nil, failure(ctx, r.log, "list", err)
	}
	return films, nil
}

type popularRow struct {
	ID         uint
	LikesCount int64
}

func (r *filmRepository) Popular(ctx context.Context, count int) ([]models.Film, error) {
	films := []models.Film{}
	if count <= 0 {
		return films, nil
	}

	db := r.db.WithContext(ctx)
	var ranked []popularRow
	if err := db.Table("films").
		Select("films.id AS id, COUNT(film_likes.user_id) AS likes_count").
		Joins("LEFT JOIN film_likes ON film_likes.film_id = films.id").
		Group("films.id").
		Order("likes_count DESC, films.id ASC").
		Limit(count).
		Scan(&ranked).Error; err != nil {
		return nil, failure(ctx, r.log, "popular", err)
	}
	if len(ranked) == 0 {
		return films, nil
	}

	ids := make([]uint, len(ranked))
	for i, row := range ranked {
		ids[i] = row.ID
	}

	var loaded []models.Film
	if err := db.Preload("Mpa").Where("id IN ?", ids).Find(&loaded).Error; err != nil {
		return nil, failure(ctx, r.log, "popular", err)
	}

	byID := make(map[uint]models.Film, len(loaded))
	for _, f := range loaded {
		byID[f.ID] = f
	}
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			films = append(films, f)
		}
	}

	if err := attachAssociations(db, films); err != nil {
		return nil, failure(ctx, r.log, "popular", err)
	}
	return films, nil
}

func (r *filmRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Film{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, failure(ctx, r.log, "exists", err)
	}
	return count > 0, nil
}

func (r *filmRepository) AddLike(ctx context.Context, filmID, userID uint) error {
	err := insertIgnoringDuplicates(r.db.WithContext(ctx), &models.FilmLike{FilmID: filmID, UserID: userID})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return &models.AppError{Code: models.CodeNotFound, Message: "Film or user no longer exists"}
		}
		return failure(ctx, r.log, "add_like", err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"film_id": filmID, "user_id": userID, "association": "like"})
	return nil
}

func (r *filmRepository) RemoveLike(ctx context.Context, filmID, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&models.FilmLike{}).Error; err != nil {
		return failure(ctx, r.log, "remove_like", err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"film_id": filmID, "user_id": userID, "association": "like"})
	return nil
}

func (r *filmRepository) reload(ctx context.Context, film *models.Film) error {
	fresh, err := r.GetByID(ctx, film.ID)
	if err != nil {
		return err
	}
	*film = *fresh
	return nil
}

// replaceGenres deletes every genre link of the film and inserts genreIDs.
func replaceGenres(tx *gorm.DB, filmID uint, genreIDs []uint) error {
	if err := tx.Where("film_id = ?", filmID).Delete(&models.FilmGenre{}).Error; err != nil {
		return err
	}
	if len(genreIDs) == 0 {
		return nil
	}
	rows := make([]models.FilmGenre, len(genreIDs))
	for i, id := range genreIDs {
		rows[i] = models.FilmGenre{FilmID: filmID, GenreID: id}
	}
	return insertIgnoringDuplicates(tx, &rows)
}

// replaceLikes deletes every like of the film and inserts userIDs.
func replaceLikes(tx *gorm.DB, filmID uint, userIDs []uint) error {
	if err := tx.Where("film_id = ?", filmID).Delete(&models.FilmLike{}).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]models.FilmLike, len(userIDs))
	for i, id := range userIDs {
		rows[i] = models.FilmLike{FilmID: filmID, UserID: id}
	}
	return insertIgnoringDuplicates(tx, &rows)
}

type filmGenreRow struct {
	FilmID uint
	ID     uint
	Name   string
}

// attachAssociations fills Genres and Likes for every film with one query per
// association table.
func attachAssociations(db *gorm.DB, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}

	ids := make([]uint, len(films))
	index := make(map[uint]int, len(films))
	for i := range films {
		ids[i] = films[i].ID
		index[films[i].ID] = i
		films[i].Genres = []models.Genre{}
		films[i].Likes = []uint{}
	}

	var genreRows []filmGenreRow
	if err := db.Table("film_genres").
		Select("film_genres.film_id AS film_id, genres.id AS id, genres.name AS name").
		Joins("JOIN genres ON genres.id = film_genres.genre_id").
		Where("film_genres.film_id IN ?", ids).
		Order("film_genres.film_id, genres.id").
		Scan(&genreRows).Error; err != nil {
		return err
	}
	for _, row := range genreRows {
		i := index[row.FilmID]
		films[i].Genres = append(films[i].Genres, models.Genre{ID: row.ID, Name: row.Name})
	}

	var likes []models.FilmLike
	if err := db.Where("film_id IN ?", ids).Order("film_id, user_id").Find(&likes).Error; err != nil {
		return err
	}
	for _, like := range likes {
		i := index[like.FilmID]
		films[i].Likes = append(films[i].Likes, like.UserID)
	}

	return nil
}
