package server

import (
	"filmorate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListGenres handles GET /api/genres
// @Summary List genres
// @Tags genres
// @Produce json
// @Success 200 {array} models.Genre
// @Router /genres [get]
func (s *Server) ListGenres(c *fiber.Ctx) error {
	genres, err := s.genres.ListGenres(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(genres)
}

// GetGenre handles GET /api/genres/:id
// @Summary Get a genre
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} models.Genre
// @Failure 404 {object} models.ErrorResponse
// @Router /genres/{id} [get]
func (s *Server) GetGenre(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	genre, err := s.genres.GetGenre(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(genre)
}

// CreateGenre handles POST /api/genres
// @Summary Add a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body models.Genre true "Genre"
// @Success 201 {object} models.Genre
// @Failure 400 {object} models.ErrorResponse
// @Router /genres [post]
func (s *Server) CreateGenre(c *fiber.Ctx) error {
	var genre models.Genre
	if err := parseBody(c, &genre); err != nil {
		return nil
	}
	created, err := s.genres.CreateGenre(c.UserContext(), &genre)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateGenre handles PUT /api/genres
// @Summary Rename a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body models.Genre true "Genre with id"
// @Success 200 {object} models.Genre
// @Failure 404 {object} models.ErrorResponse
// @Router /genres [put]
func (s *Server) UpdateGenre(c *fiber.Ctx) error {
	var genre models.Genre
	if err := parseBody(c, &genre); err != nil {
		return nil
	}
	updated, err := s.genres.UpdateGenre(c.UserContext(), &genre)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// ListMpa handles GET /api/mpa
// @Summary List MPA ratings
// @Tags mpa
// @Produce json
// @Success 200 {array} models.Mpa
// @Router /mpa [get]
func (s *Server) ListMpa(c *fiber.Ctx) error {
	ratings, err := s.mpa.ListMpa(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ratings)
}

// GetMpa handles GET /api/mpa/:id
// @Summary Get an MPA rating
// @Tags mpa
// @Produce json
// @Param id path int true "MPA rating ID"
// @Success 200 {object} models.Mpa
// @Failure 404 {object} models.ErrorResponse
// @Router /mpa/{id} [get]
func (s *Server) GetMpa(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	rating, err := s.mpa.GetMpa(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rating)
}

// CreateMpa handles POST /api/mpa
// @Summary Add an MPA rating
// @Tags mpa
// @Accept json
// @Produce json
// @Param mpa body models.Mpa true "MPA rating"
// @Success 201 {object} models.Mpa
// @Failure 400 {object} models.ErrorResponse
// @Router /mpa [post]
func (s *Server) CreateMpa(c *fiber.Ctx) error {
	var rating models.Mpa
	if err := parseBody(c, &rating); err != nil {
		return nil
	}
	created, err := s.mpa.CreateMpa(c.UserContext(), &rating)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateMpa handles PUT /api/mpa
// @Summary Rename an MPA rating
// @Tags mpa
// @Accept json
// @Produce json
// @Param mpa body models.Mpa true "MPA rating with id"
// @Success 200 {object} models.Mpa
// @Failure 404 {object} models.ErrorResponse
// @Router /mpa [put]
func (s *Server) UpdateMpa(c *fiber.Ctx) error {
	var rating models.Mpa
	if err := parseBody(c, &rating); err != nil {
		return nil
	}
	updated, err := s.mpa.UpdateMpa(c.UserContext(), &rating)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}
