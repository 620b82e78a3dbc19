package server

import (
	"likewire/internal/models"
	"likewire/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /posts/
// @Summary List posts
// @Description Return posts newest first with author, like count and like-set
// @Tags posts
// @Produce json
// @Param skip query int false "Number of posts to skip"
// @Param limit query int false "Maximum number of posts to return"
// @Success 200 {array} models.Post
// @Router /posts/ [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c)

	posts, err := s.postService.ListPosts(c.Context(), p.Skip, p.Limit)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(post)
}

// CreatePost handles POST /posts/
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,content=string} true "Post content"
// @Success 201 {object} models.Post
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/ [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), currentUserID(c), service.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /posts/:id
// @Summary Update a post
// @Description Overwrite title and content of a post owned by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body object{title=string,content=string} true "New post content"
// @Success 200 {object} models.Post
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), currentUserID(c), id, service.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{Deleted=bool}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"Deleted": true})
}

// LikePost handles POST /posts/:id/like
// @Summary Toggle a like
// @Description Like the post, or remove the like if it is already present
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(post)
}
