package server

import (
	"strconv"

	"filmorate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListFilms handles GET /api/films
// @Summary List films
// @Tags films
// @Produce json
// @Success 200 {array} models.Film
// @Router /films [get]
func (s *Server) ListFilms(c *fiber.Ctx) error {
	films, err := s.films.ListFilms(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(films)
}

// GetFilm handles GET /api/films/:id
// @Summary Get a film
// @Tags films
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} models.Film
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id} [get]
func (s *Server) GetFilm(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	film, err := s.films.GetFilm(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(film)
}

// CreateFilm handles POST /api/films
// @Summary Add a film
// @Description Genres and the MPA rating must exist. Likes in the body are ignored.
// @Tags films
// @Accept json
// @Produce json
// @Param film body models.Film true "Film"
// @Success 201 {object} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /films [post]
func (s *Server) CreateFilm(c *fiber.Ctx) error {
	var film models.Film
	if err := parseBody(c, &film); err != nil {
		return nil
	}
	created, err := s.films.AddFilm(c.UserContext(), &film)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateFilm handles PUT /api/films
// @Summary Replace a film
// @Description Scalar fields are replaced and genres and likes are resynced to the given sets.
// @Tags films
// @Accept json
// @Produce json
// @Param film body models.Film true "Film with id"
// @Success 200 {object} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /films [put]
func (s *Server) UpdateFilm(c *fiber.Ctx) error {
	var film models.Film
	if err := parseBody(c, &film); err != nil {
		return nil
	}
	updated, err := s.films.UpdateFilm(c.UserContext(), &film)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteFilm handles DELETE /api/films/:id
// @Summary Delete a film
// @Tags films
// @Param id path int true "Film ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id} [delete]
func (s *Server) DeleteFilm(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.films.DeleteFilm(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLike handles PUT /api/films/:id/like/:userId
// @Summary Like a film
// @Tags films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id}/like/{userId} [put]
func (s *Server) AddLike(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "id", "userId")
	if err != nil {
		return nil
	}
	if err := s.films.AddLike(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveLike handles DELETE /api/films/:id/like/:userId
// @Summary Remove a like
// @Tags films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id}/like/{userId} [delete]
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "id", "userId")
	if err != nil {
		return nil
	}
	if err := s.films.RemoveLike(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PopularFilms handles GET /api/films/popular
// @Summary Most liked films
// @Tags films
// @Produce json
// @Param count query int false "Maximum number of films"
// @Success 200 {array} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Router /films/popular [get]
func (s *Server) PopularFilms(c *fiber.Ctx) error {
	count := 10
	if s.config != nil && s.config.PopularDefaultCount > 0 {
		count = s.config.PopularDefaultCount
	}
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, models.NewFieldValidationError(map[string]string{"count": "must be an integer"}))
		}
		count = n
	}

	films, err := s.films.PopularFilms(c.UserContext(), count)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(films)
}
