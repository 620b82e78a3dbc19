// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"likewire/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumLikes    int
	ShouldClean bool
	// SkipBcrypt stores plaintext passwords for faster dev seeding.
	SkipBcrypt bool
}

// Seeder populates the database with test data.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		//nolint:gosec // Weak random number generator is fine for seeding
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes the full seeding pass: users, posts, then a like mesh.
func (s *Seeder) Run() error {
	log.Printf("Seeding %d users, %d posts, %d likes...",
		s.opts.NumUsers, s.opts.NumPosts, s.opts.NumLikes)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	users, err := s.CreateUsers(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := s.CreatePosts(users, s.opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	likes, err := s.CreateLikeMesh(users, posts, s.opts.NumLikes)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("created %d likes", likes)

	return nil
}

// ClearAll truncates all seeded tables.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE likes, posts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (s *Seeder) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		FullName: gofakeit.Name(),
	}

	if s.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUsers persists n generated users.
func (s *Seeder) CreateUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreatePost constructs and persists a sample post for the given user.
func (s *Seeder) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		// UUID suffix keeps generated titles under the unique constraint.
		Title:   fmt.Sprintf("%s [%s]", gofakeit.Sentence(5), gofakeit.UUID()[:8]),
		Content: gofakeit.Paragraph(1, 3, 5, "\n"),
		UserID:  user.ID,
	}

	// realistic created_at spread over the last 90 days
	daysBack := s.rng.Intn(90)
	hoursBack := s.rng.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePosts spreads n posts across the given users.
func (s *Seeder) CreatePosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute posts to")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post, err := s.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CreateLikeMesh spreads up to n likes across users and posts. Self-likes
// and duplicate pairs are skipped, so the returned count may be lower than n.
func (s *Seeder) CreateLikeMesh(users []*models.User, posts []*models.Post, n int) (int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, nil
	}

	type pair struct{ userID, postID uint }
	seen := make(map[pair]bool, n)
	created := 0

	for i := 0; i < n; i++ {
		user := users[s.rng.Intn(len(users))]
		post := posts[s.rng.Intn(len(posts))]

		if post.UserID == user.ID {
			continue
		}
		p := pair{user.ID, post.ID}
		if seen[p] {
			continue
		}
		seen[p] = true

		like := &models.Like{UserID: user.ID, PostID: post.ID}
		if err := s.db.Create(like).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
