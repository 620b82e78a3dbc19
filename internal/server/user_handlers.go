package server

import (
	"likewire/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /users/me
// @Summary Get current user
// @Description Return the authenticated user's profile with authored posts and liked posts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetProfile(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(user)
}
