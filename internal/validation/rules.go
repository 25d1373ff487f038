package validation

import (
	"filmorate/internal/models"
)

// ValidateFilm checks a film payload. Reference existence (mpa, genres, users)
// is checked by the service against storage.
func ValidateFilm(film *models.Film) error {
	if film == nil {
		return models.NewValidationError("film body is required")
	}

	fields := check(film)
	if fields == nil {
		fields = map[string]string{}
	}

	if film.Mpa != nil && film.Mpa.ID == 0 {
		if _, exists := fields["mpa"]; !exists {
			fields["mpa"] = "id is required"
		}
	}
	for _, g := range film.Genres {
		if g.ID == 0 {
			fields["genres"] = "every genre must have an id"
			break
		}
	}
	for _, id := range film.Likes {
		if id == 0 {
			fields["likes"] = "user ids must be positive"
			break
		}
	}

	return result(fields)
}

// ValidateUser checks a user payload. It does not fill in the default name.
func ValidateUser(user *models.User) error {
	if user == nil {
		return models.NewValidationError("user body is required")
	}
	return result(check(user))
}

// ValidateReferenceName checks the name of a genre or MPA rating.
func ValidateReferenceName(name string) error {
	if err := validate.Var(name, "notblank,max=100"); err != nil {
		return models.NewFieldValidationError(map[string]string{"name": "must be 1-100 characters and not blank"})
	}
	return nil
}
