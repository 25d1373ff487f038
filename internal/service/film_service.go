// Package service holds the business rules that sit between the HTTP layer and the
// repositories.
package service

import (
	"context"

	"filmorate/internal/models"
	"filmorate/internal/observability"
	"filmorate/internal/repository"
	"filmorate/internal/validation"
)

// FilmService provides film catalog, like and popularity logic.
type FilmService struct {
	filmRepo  repository.FilmRepository
	genreRepo repository.GenreRepository
	mpaRepo   repository.MpaRepository
	userRepo  repository.UserRepository
}

// NewFilmService returns a new FilmService.
func NewFilmService(
	filmRepo repository.FilmRepository,
	genreRepo repository.GenreRepository,
	mpaRepo repository.MpaRepository,
	userRepo repository.UserRepository,
) *FilmService {
	return &FilmService{
		filmRepo:  filmRepo,
		genreRepo: genreRepo,
		mpaRepo:   mpaRepo,
		userRepo:  userRepo,
	}
}

// AddFilm validates the film, resolves its MPA rating and genres, and stores it.
// Likes in the payload are ignored; a new film starts with none.
func (s *FilmService) AddFilm(ctx context.Context, film *models.Film) (_ *models.Film, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FilmService", "AddFilm")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidateFilm(film); err != nil {
		return nil, err
	}
	film.ID = 0
	film.Likes = nil

	if err := s.checkReferences(ctx, film, false); err != nil {
		return nil, err
	}
	if err := s.filmRepo.Create(ctx, film); err != nil {
		return nil, err
	}

	observability.GlobalLogger.InfoContext(ctx, "film added", "film_id", film.ID)
	return film, nil
}

// UpdateFilm replaces the film's fields and resyncs its genres and likes.
func (s *FilmService) UpdateFilm(ctx context.Context, film *models.Film) (_ *models.Film, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FilmService", "UpdateFilm")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidateFilm(film); err != nil {
		return nil, err
	}
	if film.ID == 0 {
		return nil, models.NewFieldValidationError(map[string]string{"id": "id is required"})
	}
	span.SetAttributes(observability.FilmAttr(film.ID))

	if err := s.checkReferences(ctx, film, true); err != nil {
		return nil, err
	}
	if err := s.filmRepo.Update(ctx, film); err != nil {
		return nil, err
	}

	observability.GlobalLogger.InfoContext(ctx, "film updated", "film_id", film.ID)
	return film, nil
}

func (s *FilmService) DeleteFilm(ctx context.Context, id uint) error {
	if err := s.filmRepo.Delete(ctx, id); err != nil {
		return err
	}
	observability.GlobalLogger.InfoContext(ctx, "film deleted", "film_id", id)
	return nil
}

func (s *FilmService) GetFilm(ctx context.Context, id uint) (*models.Film, error) {
	return s.filmRepo.GetByID(ctx, id)
}

func (s *FilmService) ListFilms(ctx context.Context) ([]models.Film, error) {
	return s.filmRepo.List(ctx)
}

// AddLike records that userID likes filmID. Liking twice is a no-op.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FilmService", "AddLike",
		observability.FilmAttr(filmID),
		observability.UserAttr("user", userID),
	)
	defer func() { observability.EndSpan(span, err) }()

	if err := s.ensureLikeParties(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.filmRepo.AddLike(ctx, filmID, userID); err != nil {
		return err
	}

	observability.GlobalLogger.InfoContext(ctx, "like added", "film_id", filmID, "user_id", userID)
	return nil
}

// RemoveLike deletes the like of userID on filmID. Removing an absent like succeeds.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FilmService", "RemoveLike",
		observability.FilmAttr(filmID),
		observability.UserAttr("user", userID),
	)
	defer func() { observability.EndSpan(span, err) }()

	if err := s.ensureLikeParties(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.filmRepo.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}

	observability.GlobalLogger.InfoContext(ctx, "like removed", "film_id", filmID, "user_id", userID)
	return nil
}

// PopularFilms returns up to count films ranked by likes, ties broken by id.
func (s *FilmService) PopularFilms(ctx context.Context, count int) ([]models.Film, error) {
	if count <= 0 {
		return nil, models.NewFieldValidationError(map[string]string{"count": "must be greater than 0"})
	}
	return s.filmRepo.Popular(ctx, count)
}

// checkReferences resolves the MPA rating, every genre and, when withLikes is set,
// every liking user. Missing genres and users are reported as a batch.
func (s *FilmService) checkReferences(ctx context.Context, film *models.Film, withLikes bool) error {
	if _, err := s.mpaRepo.GetByID(ctx, film.Mpa.ID); err != nil {
		return err
	}

	if genreIDs := film.GenreIDs(); len(genreIDs) > 0 {
		found, err := s.genreRepo.GetByIDs(ctx, genreIDs)
		if err != nil {
			return err
		}
		foundIDs := make([]uint, len(found))
		for i, g := range found {
			foundIDs[i] = g.ID
		}
		if missing := missingIDs(genreIDs, foundIDs); len(missing) > 0 {
			return models.NewMissingReferencesError("Genre", missing)
		}
	}

	if !withLikes {
		return nil
	}
	if likeIDs := film.LikeIDs(); len(likeIDs) > 0 {
		found, err := s.userRepo.ExistingIDs(ctx, likeIDs)
		if err != nil {
			return err
		}
		if missing := missingIDs(likeIDs, found); len(missing) > 0 {
			return models.NewMissingReferencesError("User", missing)
		}
	}
	return nil
}

func (s *FilmService) ensureLikeParties(ctx context.Context, filmID, userID uint) error {
	exists, err := s.filmRepo.Exists(ctx, filmID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Film", filmID)
	}
	_, err = s.userRepo.GetByID(ctx, userID)
	return err
}

// missingIDs returns the members of want absent from have, in want's order.
func missingIDs(want, have []uint) []uint {
	present := make(map[uint]struct{}, len(have))
	for _, id := range have {
		present[id] = struct{}{}
	}
	var missing []uint
	for _, id := range want {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
