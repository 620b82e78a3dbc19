package seed

import (
	"testing"

	"likewire/internal/database"
	"likewire/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeederRun(t *testing.T) {
	db := setupTestDB(t)

	// ShouldClean uses TRUNCATE, which SQLite does not support.
	s := NewSeeder(db, Options{
		NumUsers:   5,
		NumPosts:   20,
		NumLikes:   40,
		SkipBcrypt: true,
	})
	require.NoError(t, s.Run())

	var userCount, postCount, likeCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Post{}).Count(&postCount)
	db.Model(&models.Like{}).Count(&likeCount)

	assert.Equal(t, int64(5), userCount)
	assert.Equal(t, int64(20), postCount)
	// Self-likes and duplicate pairs are skipped, so the count is bounded.
	assert.LessOrEqual(t, likeCount, int64(40))
	assert.Positive(t, likeCount)
}

func TestCreateLikeMeshSkipsSelfLikes(t *testing.T) {
	db := setupTestDB(t)
	s := NewSeeder(db, Options{SkipBcrypt: true})

	users, err := s.CreateUsers(3)
	require.NoError(t, err)
	posts, err := s.CreatePosts(users, 10)
	require.NoError(t, err)

	_, err = s.CreateLikeMesh(users, posts, 100)
	require.NoError(t, err)

	var likes []models.Like
	require.NoError(t, db.Find(&likes).Error)

	postAuthor := make(map[uint]uint, len(posts))
	for _, p := range posts {
		postAuthor[p.ID] = p.UserID
	}
	for _, like := range likes {
		assert.NotEqual(t, postAuthor[like.PostID], like.UserID,
			"a user must never like their own post")
	}
}

func TestCreateUserOverrides(t *testing.T) {
	db := setupTestDB(t)
	s := NewSeeder(db, Options{SkipBcrypt: true})

	user, err := s.CreateUser(func(u *models.User) {
		u.Username = "fixed-name"
		u.Disabled = true
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-name", user.Username)
	assert.True(t, user.Disabled)
	assert.NotZero(t, user.ID)
}
