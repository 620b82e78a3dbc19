package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"likewire/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// withUser injects a fake authenticated user, bypassing AuthRequired.
func withUser(app *fiber.App, userID uint) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
}

func TestGetPosts(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("List", mock.Anything, 100, 0).Return([]*models.Post{
		{ID: 2, Title: "Newer"},
		{ID: 1, Title: "Older"},
	}, nil)

	s := newTestServer(new(MockUserRepository), postRepo)
	app := fiber.New()
	app.Get("/posts/", s.GetPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var posts []models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	require.Len(t, posts, 2)
	assert.Equal(t, uint(2), posts[0].ID)
}

func TestGetPostsPagination(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("List", mock.Anything, 10, 5).Return([]*models.Post{}, nil)

	s := newTestServer(new(MockUserRepository), postRepo)
	app := fiber.New()
	app.Get("/posts/", s.GetPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/?skip=5&limit=10", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	postRepo.AssertCalled(t, "List", mock.Anything, 10, 5)
}

func TestGetPost(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockSetup      func(*MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			path: "/posts/1",
			mockSetup: func(m *MockPostRepository) {
				m.On("GetByID", mock.Anything, uint(1)).
					Return(&models.Post{ID: 1, Title: "Hello", LikesCount: 2}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not Found",
			path: "/posts/99",
			mockSetup: func(m *MockPostRepository) {
				m.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("Post", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid ID",
			path:           "/posts/abc",
			mockSetup:      func(m *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			tt.mockSetup(postRepo)

			s := newTestServer(new(MockUserRepository), postRepo)
			app := fiber.New()
			app.Get("/posts/:id", s.GetPost)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"title": "New Post", "content": "Hello world"},
			mockSetup: func(m *MockPostRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil).
					Run(func(args mock.Arguments) {
						args.Get(1).(*models.Post).ID = 1
					})
				m.On("GetByID", mock.Anything, uint(1)).
					Return(&models.Post{ID: 1, Title: "New Post", UserID: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Title",
			body:           map[string]string{"content": "Hello world"},
			mockSetup:      func(m *MockPostRepository) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "Duplicate Title",
			body: map[string]string{"title": "New Post", "content": "Hello world"},
			mockSetup: func(m *MockPostRepository) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(models.NewConflictError("Post with this title already exists"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			tt.mockSetup(postRepo)

			s := newTestServer(new(MockUserRepository), postRepo)
			app := fiber.New()
			withUser(app, 1)
			app.Post("/posts/", s.CreatePost)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUpdatePost(t *testing.T) {
	t.Run("Forbidden For Non-Author", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 2}, nil)

		s := newTestServer(new(MockUserRepository), postRepo)
		app := fiber.New()
		withUser(app, 1)
		app.Put("/posts/:id", s.UpdatePost)

		body, _ := json.Marshal(map[string]string{"title": "t", "content": "c"})
		req := httptest.NewRequest(http.MethodPut, "/posts/5", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Success", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 1, Title: "old", Content: "old"}, nil)
		postRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		s := newTestServer(new(MockUserRepository), postRepo)
		app := fiber.New()
		withUser(app, 1)
		app.Put("/posts/:id", s.UpdatePost)

		body, _ := json.Marshal(map[string]string{"title": "new", "content": "new body"})
		req := httptest.NewRequest(http.MethodPut, "/posts/5", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Success Returns Deleted Flag", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 1}, nil)
		postRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

		s := newTestServer(new(MockUserRepository), postRepo)
		app := fiber.New()
		withUser(app, 1)
		app.Delete("/posts/:id", s.DeletePost)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/5", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]bool
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body["Deleted"])
	})

	t.Run("Forbidden For Non-Author", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 2}, nil)

		s := newTestServer(new(MockUserRepository), postRepo)
		app := fiber.New()
		withUser(app, 1)
		app.Delete("/posts/:id", s.DeletePost)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/5", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestLikePost(t *testing.T) {
	t.Run("Toggle On", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 2}, nil)
		postRepo.On("IsLiked", mock.Anything, uint(1), uint(5)).Return(false, nil)
		postRepo.On("Like", mock.Anything, uint(1), uint(5)).Return(nil)

		s := newTestServer(new(MockUserRepository), postRepo)
		app := fiber.New()
		withUser(app, 1)
		app.Post("/posts/:id/like", s.LikePost)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/posts/5/like", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Own Post Rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 1}, nil)

		s := newTestServer(new(MockUserRepository), postRepo)
		app := fiber.New()
		withUser(app, 1)
		app.Post("/posts/:id/like", s.LikePost)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/posts/5/like", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
