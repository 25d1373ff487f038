package database

import "filmorate/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Reference tables come first so foreign keys resolve under AutoMigrate.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Mpa{},
		&models.Genre{},
		&models.User{},
		&models.Film{},
		&models.FilmGenre{},
		&models.FilmLike{},
		&models.UserFriend{},
	}
}
