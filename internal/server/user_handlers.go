package server

import (
	"filmorate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /api/users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.users.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.users.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// CreateUser handles POST /api/users
// @Summary Register a user
// @Description A blank name defaults to the login.
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.User true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := parseBody(c, &user); err != nil {
		return nil
	}
	created, err := s.users.AddUser(c.UserContext(), &user)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateUser handles PUT /api/users
// @Summary Replace a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.User true "User with id"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var user models.User
	if err := parseBody(c, &user); err != nil {
		return nil
	}
	updated, err := s.users.UpdateUser(c.UserContext(), &user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete a user
// @Description Also removes every friend edge touching the user and every like the user gave.
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.users.DeleteUser(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddFriend handles PUT /api/users/:id/friends/:friendId
// @Summary Add a friend
// @Description Adds the one-way edge id -> friendId.
// @Tags users
// @Param id path int true "User ID"
// @Param friendId path int true "Friend user ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends/{friendId} [put]
func (s *Server) AddFriend(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "id", "friendId")
	if err != nil {
		return nil
	}
	if err := s.users.AddFriend(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveFriend handles DELETE /api/users/:id/friends/:friendId
// @Summary Remove a friend
// @Tags users
// @Param id path int true "User ID"
// @Param friendId path int true "Friend user ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends/{friendId} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "id", "friendId")
	if err != nil {
		return nil
	}
	if err := s.users.RemoveFriend(c.UserContext(), ids[0], ids[1]); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFriends handles GET /api/users/:id/friends
// @Summary List a user's friends
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	friends, err := s.users.GetFriends(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(friends)
}

// GetCommonFriends handles GET /api/users/:id/friends/common/:otherId
// @Summary Friends two users share
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param otherId path int true "Other user ID"
// @Success 200 {array} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends/common/{otherId} [get]
func (s *Server) GetCommonFriends(c *fiber.Ctx) error {
	ids, err := parseIDs(c, "id", "otherId")
	if err != nil {
		return nil
	}
	common, err := s.users.GetCommonFriends(c.UserContext(), ids[0], ids[1])
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(common)
}
