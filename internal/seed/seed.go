package seed

import (
	"context"
	"fmt"
	"log"

	"filmorate/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumFilms int
	// LikesPerFilm is the upper bound of likes given to each film.
	LikesPerFilm int
	// FriendsPerUser is the upper bound of outgoing friend edges per user.
	FriendsPerUser int
	ShouldClean    bool
}

// Seeder fills a database with a demo catalog.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder. Reference data must already be present.
func NewSeeder(db *gorm.DB, opts SeedOptions) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearCatalog removes users, films and every association. Genres and MPA
// ratings are kept.
func (s *Seeder) ClearCatalog() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.FilmLike{},
			&models.FilmGenre{},
			&models.UserFriend{},
			&models.Film{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// SeedResult summarises what a seeding run created.
type SeedResult struct {
	Users   []*models.User
	Films   []*models.Film
	Likes   int
	Friends int
}

// SeedCatalog creates users and films, then wires random likes and friend edges
// between them.
func (s *Seeder) SeedCatalog(ctx context.Context, opts Options) (*SeedResult, error) {
	log.Printf("🌱 Seeding catalog with %d users and %d films...", opts.NumUsers, opts.NumFilms)

	if opts.ShouldClean && !s.factory.opts.DryRun {
		if err := s.ClearCatalog(); err != nil {
			return nil, fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	var genres []models.Genre
	if err := s.db.WithContext(ctx).Order("id").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	var ratings []models.Mpa
	if err := s.db.WithContext(ctx).Order("id").Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to load mpa ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil, fmt.Errorf("no mpa ratings found, seed reference data first")
	}

	result := &SeedResult{}
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		result.Users = append(result.Users, user)
	}
	log.Printf("✓ %d users created", len(result.Users))

	for i := 0; i < opts.NumFilms; i++ {
		film, err := s.factory.CreateFilm(ctx, genres, ratings)
		if err != nil {
			return nil, fmt.Errorf("failed to create film: %w", err)
		}
		result.Films = append(result.Films, film)
	}
	log.Printf("✓ %d films created", len(result.Films))

	if s.factory.opts.DryRun || len(result.Users) == 0 {
		return result, nil
	}

	faker := s.factory.faker
	for _, film := range result.Films {
		n := faker.Number(0, min(opts.LikesPerFilm, len(result.Users)))
		for _, idx := range pickDistinct(faker.Number, len(result.Users), n) {
			if err := s.factory.films.AddLike(ctx, film.ID, result.Users[idx].ID); err != nil {
				return nil, fmt.Errorf("failed to add like: %w", err)
			}
			result.Likes++
		}
	}
	log.Printf("✓ %d likes added", result.Likes)

	for i, user := range result.Users {
		n := faker.Number(0, min(opts.FriendsPerUser, len(result.Users)-1))
		for _, idx := range pickDistinct(faker.Number, len(result.Users), n+1) {
			if idx == i || n == 0 {
				continue
			}
			if err := s.factory.users.AddFriend(ctx, user.ID, result.Users[idx].ID); err != nil {
				return nil, fmt.Errorf("failed to add friend: %w", err)
			}
			result.Friends++
			n--
		}
	}
	log.Printf("✓ %d friend edges added", result.Friends)

	return result, nil
}

// pickDistinct returns n distinct indexes in [0, size) using a partial shuffle.
func pickDistinct(number func(min, max int) int, size, n int) []int {
	if n > size {
		n = size
	}
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		j := number(i, size-1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:n]
}
