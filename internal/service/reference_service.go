package service

import (
	"context"

	"filmorate/internal/models"
	"filmorate/internal/observability"
	"filmorate/internal/repository"
	"filmorate/internal/validation"
)

// GenreService serves genre lookups and admin maintenance.
type GenreService struct {
	genreRepo repository.GenreRepository
}

// NewGenreService returns a new GenreService.
func NewGenreService(genreRepo repository.GenreRepository) *GenreService {
	return &GenreService{genreRepo: genreRepo}
}

func (s *GenreService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.genreRepo.List(ctx)
}

func (s *GenreService) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	return s.genreRepo.GetByID(ctx, id)
}

func (s *GenreService) CreateGenre(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	if genre == nil {
		return nil, models.NewValidationError("genre body is required")
	}
	if err := validation.ValidateReferenceName(genre.Name); err != nil {
		return nil, err
	}
	genre.ID = 0
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		return nil, err
	}
	observability.GlobalLogger.InfoContext(ctx, "genre added", "genre_id", genre.ID)
	return genre, nil
}

func (s *GenreService) UpdateGenre(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	if genre == nil {
		return nil, models.NewValidationError("genre body is required")
	}
	if genre.ID == 0 {
		return nil, models.NewFieldValidationError(map[string]string{"id": "id is required"})
	}
	if err := validation.ValidateReferenceName(genre.Name); err != nil {
		return nil, err
	}
	if err := s.genreRepo.Update(ctx, genre); err != nil {
		return nil, err
	}
	observability.GlobalLogger.InfoContext(ctx, "genre updated", "genre_id", genre.ID)
	return genre, nil
}

// MpaService serves MPA rating lookups and admin maintenance.
type MpaService struct {
	mpaRepo repository.MpaRepository
}

// NewMpaService returns a new MpaService.
func NewMpaService(mpaRepo repository.MpaRepository) *MpaService {
	return &MpaService{mpaRepo: mpaRepo}
}

func (s *MpaService) ListMpa(ctx context.Context) ([]models.Mpa, error) {
	return s.mpaRepo.List(ctx)
}

func (s *MpaService) GetMpa(ctx context.Context, id uint) (*models.Mpa, error) {
	return s.mpaRepo.GetByID(ctx, id)
}

func (s *MpaService) CreateMpa(ctx context.Context, mpa *models.Mpa) (*models.Mpa, error) {
	if mpa == nil {
		return nil, models.NewValidationError("MPA rating body is required")
	}
	if err := validation.ValidateReferenceName(mpa.Name); err != nil {
		return nil, err
	}
	mpa.ID = 0
	if err := s.mpaRepo.Create(ctx, mpa); err != nil {
		return nil, err
	}
	observability.GlobalLogger.InfoContext(ctx, "mpa rating added", "mpa_id", mpa.ID)
	return mpa, nil
}

func (s *MpaService) UpdateMpa(ctx context.Context, mpa *models.Mpa) (*models.Mpa, error) {
	if mpa == nil {
		return nil, models.NewValidationError("MPA rating body is required")
	}
	if mpa.ID == 0 {
		return nil, models.NewFieldValidationError(map[string]string{"id": "id is required"})
	}
	if err := validation.ValidateReferenceName(mpa.Name); err != nil {
		return nil, err
	}
	if err := s.mpaRepo.Update(ctx, mpa); err != nil {
		return nil, err
	}
	observability.GlobalLogger.InfoContext(ctx, "mpa rating updated", "mpa_id", mpa.ID)
	return mpa, nil
}
