package service

import (
	"context"
	"strings"

	"likewire/internal/models"
	"likewire/internal/observability"
	"likewire/internal/repository"
)

const (
	maxTitleLength   = 300
	maxContentLength = 50000
)

// PostService implements post CRUD and the like toggle.
type PostService struct {
	postRepo repository.PostRepository
}

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title   string
	Content string
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func validatePostInput(in PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLength {
		return models.NewValidationError("Title must be 300 characters or less")
	}
	if strings.TrimSpace(in.Content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLength {
		return models.NewValidationError("Content must be 50000 characters or less")
	}
	return nil
}

// ListPosts returns posts newest first.
func (s *PostService) ListPosts(ctx context.Context, skip, limit int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, skip)
}

// GetPost returns a single post with author, like count and like-set.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost creates a post owned by userID.
func (s *PostService) CreatePost(ctx context.Context, userID uint, in PostInput) (*models.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost overwrites title and content of a post owned by userID.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint, in PostInput) (*models.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("You are not authorized to edit this post")
	}

	post.Title = in.Title
	post.Content = in.Content
	// Save would cascade into the preloaded author association; clear it first.
	post.User = nil
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

// DeletePost removes a post owned by userID along with its likes.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You are not authorized to delete this post")
	}

	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips userID's like on a post: liking an unliked post adds the
// like, liking it again removes it. Authors cannot like their own posts.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID == userID {
		return nil, models.NewBadRequestError("You cannot like your own post")
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("unlike").Inc()
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("like").Inc()
	}

	return s.postRepo.GetByID(ctx, postID)
}
