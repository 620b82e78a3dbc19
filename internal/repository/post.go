package repository

import (
	"context"
	"errors"

	"likewire/internal/cache"
	"likewire/internal/models"
	"likewire/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// firstPageLimit matches the API's default page size. Only that page of the
// list is cached; deeper pages go straight to the database.
const firstPageLimit = 100

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Post with this title already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "repository.post.get")
	defer span.End()
	span.AddAttributes(attribute.Int("post.id", int(id)))

	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		if err := r.applyPostDetails(r.db.WithContext(ctx)).
			Preload("User").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return r.loadLikers(ctx, []*models.Post{&post})
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "repository.post.list")
	defer span.End()
	span.AddAttributes(
		attribute.Int("page.limit", limit),
		attribute.Int("page.offset", offset),
	)

	var posts []*models.Post
	fetch := func() error {
		if err := r.applyPostDetails(r.db.WithContext(ctx)).
			Preload("User").
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return r.loadLikers(ctx, posts)
	}

	var err error
	if offset == 0 && limit == firstPageLimit {
		err = cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return posts, nil
}

// applyPostDetails adds a subquery computing the like count in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count")
}

// loadLikers populates the like-set of each post from the likes join table
// with one batched query.
func (r *postRepository) loadLikers(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type likerRow struct {
		models.User
		LikedPostID uint
	}
	var rows []likerRow
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*, likes.post_id as liked_post_id").
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.post_id IN ?", postIDs).
		Scan(&rows).Error; err != nil {
		return models.NewInternalError(err)
	}

	byPost := make(map[uint][]models.User, len(posts))
	for _, row := range rows {
		byPost[row.LikedPostID] = append(byPost[row.LikedPostID], row.User)
	}
	for _, p := range posts {
		p.Likers = byPost[p.ID]
		if p.Likers == nil {
			p.Likers = []models.User{}
		}
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Post with this title already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidatePostsList(ctx)
	return nil
}

// Delete removes the post and its like rows in one transaction. Like rows
// must be cleaned up explicitly or they would orphan on post deletion.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	// ON CONFLICT DO NOTHING keeps the toggle idempotent when two requests race.
	like := &models.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidatePostsList(ctx)
	return nil
}
