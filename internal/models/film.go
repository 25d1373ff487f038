// Package models contains data structures for the application's domain models.
package models

import "sort"

// EarliestReleaseDate is the day of the first public film screening.
var EarliestReleaseDate = NewDate(1895, 12, 28)

// Film is a catalog entry. Genres and Likes live in association tables and are
// loaded explicitly by the repository.
type Film struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name" validate:"notblank"`
	Description string  `gorm:"size:200" json:"description" validate:"max=200"`
	ReleaseDate Date    `gorm:"not null" json:"releaseDate" validate:"required,releasedate"`
	Duration    int     `gorm:"not null" json:"duration" validate:"gt=0"`
	MpaID       uint    `gorm:"not null;index" json:"-"`
	Mpa         *Mpa    `gorm:"foreignKey:MpaID" json:"mpa" validate:"required"`
	Genres      []Genre `gorm:"-" json:"genres"`
	Likes       []uint  `gorm:"-" json:"likes"`
}

// TableName specifies the table name for GORM
func (Film) TableName() string {
	return "films"
}

// GenreIDs returns the distinct genre ids of the film in ascending order.
func (f *Film) GenreIDs() []uint {
	ids := make([]uint, 0, len(f.Genres))
	for _, g := range f.Genres {
		ids = append(ids, g.ID)
	}
	return uniqueSorted(ids)
}

// LikeIDs returns the distinct user ids that liked the film in ascending order.
func (f *Film) LikeIDs() []uint {
	return uniqueSorted(f.Likes)
}

// LikesCount is the number of distinct users who liked the film.
func (f *Film) LikesCount() int {
	return len(f.LikeIDs())
}

func uniqueSorted(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FilmGenre links a film to one of its genres.
type FilmGenre struct {
	FilmID  uint `gorm:"primaryKey;autoIncrement:false"`
	GenreID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName specifies the table name for GORM
func (FilmGenre) TableName() string {
	return "film_genres"
}

// FilmLike records that a user likes a film.
// The combination of FilmID and UserID is unique.
type FilmLike struct {
	FilmID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName specifies the table name for GORM
func (FilmLike) TableName() string {
	return "film_likes"
}
