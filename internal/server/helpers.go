package server

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"filmorate/internal/middleware"
	"filmorate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Services the handlers call. Implemented by package service.
type filmService interface {
	AddFilm(ctx context.Context, film *models.Film) (*models.Film, error)
	UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error)
	DeleteFilm(ctx context.Context, id uint) error
	GetFilm(ctx context.Context, id uint) (*models.Film, error)
	ListFilms(ctx context.Context) ([]models.Film, error)
	AddLike(ctx context.Context, filmID, userID uint) error
	RemoveLike(ctx context.Context, filmID, userID uint) error
	PopularFilms(ctx context.Context, count int) ([]models.Film, error)
}

type userService interface {
	AddUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	AddFriend(ctx context.Context, userID, friendID uint) error
	RemoveFriend(ctx context.Context, userID, friendID uint) error
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error)
}

type genreService interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetGenre(ctx context.Context, id uint) (*models.Genre, error)
	CreateGenre(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	UpdateGenre(ctx context.Context, genre *models.Genre) (*models.Genre, error)
}

type mpaService interface {
	ListMpa(ctx context.Context) ([]models.Mpa, error)
	GetMpa(ctx context.Context, id uint) (*models.Mpa, error)
	CreateMpa(ctx context.Context, mpa *models.Mpa) (*models.Mpa, error)
	UpdateMpa(ctx context.Context, mpa *models.Mpa) (*models.Mpa, error)
}

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// The error message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "userId" -> "Invalid user ID", "friendId" -> "Invalid friend ID").
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseIDs extracts several route parameters, stopping at the first invalid one.
func parseIDs(c *fiber.Ctx, params ...string) ([]uint, error) {
	ids := make([]uint, len(params))
	for i, p := range params {
		id, err := parseID(c, p)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// parseBody decodes the JSON body into out.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Request body is required"))
		return errResponseWritten
	}
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body: "+err.Error()))
		return errResponseWritten
	}
	return nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "otherId" -> "other ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// respondError maps err to its status and writes the error body. Internal errors are
// logged with their cause, which the client never sees.
func respondError(c *fiber.Ctx, err error) error {
	status := models.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return models.RespondWithError(c, status, err)
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return models.CodeNotFound
	case status == fiber.StatusConflict:
		return models.CodeConflict
	case status >= fiber.StatusInternalServerError:
		return models.CodeInternal
	default:
		return models.CodeValidation
	}
}
