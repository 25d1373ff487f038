// Package seed loads reference data and generates demo catalogs for development
// and testing.
package seed

import (
	_ "embed"
	"fmt"

	"filmorate/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed reference.yml
var referenceYAML []byte

type referenceEntry struct {
	ID   uint   `yaml:"id"`
	Name string `yaml:"name"`
}

// ReferenceSet is the built-in list of genres and MPA ratings.
type ReferenceSet struct {
	Genres []referenceEntry `yaml:"genres"`
	Mpa    []referenceEntry `yaml:"mpa"`
}

// LoadReferenceSet parses the embedded reference data.
func LoadReferenceSet() (*ReferenceSet, error) {
	return parseReferenceSet(referenceYAML)
}

func parseReferenceSet(raw []byte) (*ReferenceSet, error) {
	var set ReferenceSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse reference data: %w", err)
	}
	if err := set.validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

func (s *ReferenceSet) validate() error {
	check := func(kind string, entries []referenceEntry) error {
		seen := make(map[uint]bool, len(entries))
		for _, e := range entries {
			if e.ID == 0 || e.Name == "" {
				return fmt.Errorf("reference %s entry %+v needs an id and a name", kind, e)
			}
			if seen[e.ID] {
				return fmt.Errorf("duplicate reference %s id %d", kind, e.ID)
			}
			seen[e.ID] = true
		}
		return nil
	}
	if err := check("genre", s.Genres); err != nil {
		return err
	}
	return check("mpa", s.Mpa)
}

// GenreModels returns the genres as models.
func (s *ReferenceSet) GenreModels() []models.Genre {
	out := make([]models.Genre, len(s.Genres))
	for i, e := range s.Genres {
		out[i] = models.Genre{ID: e.ID, Name: e.Name}
	}
	return out
}

// MpaModels returns the MPA ratings as models.
func (s *ReferenceSet) MpaModels() []models.Mpa {
	out := make([]models.Mpa, len(s.Mpa))
	for i, e := range s.Mpa {
		out[i] = models.Mpa{ID: e.ID, Name: e.Name}
	}
	return out
}

// ReferenceData upserts the built-in genres and MPA ratings. It is safe to run on
// every start.
func ReferenceData(db *gorm.DB) error {
	set, err := LoadReferenceSet()
	if err != nil {
		return err
	}
	return applyReferenceSet(db, set)
}

func applyReferenceSet(db *gorm.DB, set *ReferenceSet) error {
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if genres := set.GenreModels(); len(genres) > 0 {
			if err := tx.Clauses(upsert).Create(&genres).Error; err != nil {
				return fmt.Errorf("seed genres: %w", err)
			}
		}
		if ratings := set.MpaModels(); len(ratings) > 0 {
			if err := tx.Clauses(upsert).Create(&ratings).Error; err != nil {
				return fmt.Errorf("seed mpa ratings: %w", err)
			}
		}

		// Explicit ids leave the serial sequences behind on PostgreSQL.
		if tx.Dialector.Name() == "postgres" {
			for _, table := range []string{"genres", "mpa_ratings"} {
				if err := tx.Exec(fmt.Sprintf(`
					SELECT setval(
						pg_get_serial_sequence('%[1]s', 'id'),
						GREATEST((SELECT COALESCE(MAX(id), 1) FROM %[1]s), 1),
						true
					)`, table)).Error; err != nil {
					return fmt.Errorf("failed to reset %s sequence: %w", table, err)
				}
			}
		}
		return nil
	})
}
