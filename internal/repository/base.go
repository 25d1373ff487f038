// Package repository implements the data access layer for the application.
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

// failure logs an infrastructure error with full detail and returns the generic
// internal error callers see.
func failure(ctx context.Context, log *observability.RepoLogger, operation string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	log.LogError(ctx, err, operation)
	return models.NewInternalError(err)
}

// insertIgnoringDuplicates inserts association rows, treating rows that already exist
// as success.
func insertIgnoringDuplicates(tx *gorm.DB, rows interface{}) error {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error
	if database.IsUniqueViolation(err) {
		return nil
	}
	return err
}

func distinct(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
