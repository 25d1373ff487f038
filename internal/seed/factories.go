package seed

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"filmorate/internal/models"
	"filmorate/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// SeedOptions controls how the factory generates and persists entities.
type SeedOptions struct {
	// Seed fixes the fake data generator. Zero picks a random seed.
	Seed int64
	// DryRun builds entities and assigns synthetic ids without writing.
	DryRun bool
	// MaxGenresPerFilm caps how many genres a generated film gets.
	MaxGenresPerFilm int
}

// Factory builds catalog entities and persists them through the repositories.
type Factory struct {
	films repository.FilmRepository
	users repository.UserRepository
	faker *gofakeit.Faker
	opts  SeedOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	if opts.MaxGenresPerFilm <= 0 {
		opts.MaxGenresPerFilm = 3
	}
	return &Factory{
		films:  repository.NewFilmRepository(db),
		users:  repository.NewUserRepository(db),
		faker:  gofakeit.New(opts.Seed),
		opts:   opts,
		nextID: 1000,
	}
}

// BuildUser constructs a user without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	birthday := f.faker.DateRange(
		time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2008, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	user := &models.User{
		Email:    f.faker.Email(),
		Login:    fmt.Sprintf("%s%d", loginSafe(f.faker.Username()), f.faker.Number(100, 999)),
		Name:     f.faker.Name(),
		Birthday: models.DateOf(birthday),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser builds and persists a sample user.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	user.ApplyDefaultName()

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: login=%s email=%s", user.Login, user.Email)
		return user, nil
	}

	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildFilm constructs a film with a random rating and a few random genres from
// the given reference sets.
func (f *Factory) BuildFilm(genres []models.Genre, ratings []models.Mpa, overrides ...func(*models.Film)) *models.Film {
	released := f.faker.DateRange(
		time.Date(1930, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	film := &models.Film{
		Name:        filmTitle(f.faker.Adjective(), f.faker.Noun()),
		Description: truncateRunes(f.faker.Sentence(12), 200),
		ReleaseDate: models.DateOf(released),
		Duration:    f.faker.Number(70, 210),
	}

	if len(ratings) > 0 {
		mpa := ratings[f.faker.Number(0, len(ratings)-1)]
		film.Mpa = &mpa
	}
	if len(genres) > 0 {
		n := f.faker.Number(0, min(f.opts.MaxGenresPerFilm, len(genres)))
		for i := 0; i < n; i++ {
			film.Genres = append(film.Genres, genres[f.faker.Number(0, len(genres)-1)])
		}
	}

	for _, override := range overrides {
		override(film)
	}
	return film
}

// CreateFilm builds and persists a sample film.
func (f *Factory) CreateFilm(ctx context.Context, genres []models.Genre, ratings []models.Mpa, overrides ...func(*models.Film)) (*models.Film, error) {
	film := f.BuildFilm(genres, ratings, overrides...)

	if f.opts.DryRun {
		f.nextID++
		film.ID = f.nextID
		log.Printf("[dry-run] CreateFilm: name=%q genres=%d", film.Name, len(film.GenreIDs()))
		return film, nil
	}

	if err := f.films.Create(ctx, film); err != nil {
		return nil, err
	}
	return film, nil
}

func loginSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func filmTitle(adjective, noun string) string {
	title := "The " + adjective + " " + noun
	runes := []rune(title)
	for i := 1; i < len(runes); i++ {
		if runes[i-1] == ' ' {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
