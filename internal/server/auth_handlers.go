package server

import (
	"likewire/internal/models"
	"likewire/internal/service"

	"github.com/gofiber/fiber/v2"
)

// TokenResponse is the body returned by a successful token request.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token handles POST /token
// @Summary Obtain a bearer token
// @Description Exchange a username and password for a signed bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /token [post]
func (s *Server) Token(c *fiber.Ctx) error {
	// Credentials arrive form-encoded, matching the OAuth2 password flow shape.
	var req struct {
		Username string `form:"username"`
		Password string `form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.authService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		if models.HTTPStatus(err) == fiber.StatusUnauthorized {
			c.Set("WWW-Authenticate", "Bearer")
		}
		return models.RespondError(c, err)
	}

	token, _, err := s.authService.IssueToken(user, 0)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Register handles POST /register/
// @Summary Register a new user
// @Description Create a user account after verifying the email address is deliverable
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,full_name=string,password=string} true "Registration request"
// @Success 201 {object} models.User
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 504 {object} models.ErrorResponse
// @Router /register/ [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}
