package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/events"
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFollowTestServer(followRepo *MockFollowRepository, userRepo *MockUserRepository) *Server {
	s := &Server{}
	s.followService = service.NewFollowService(followRepo, userRepo, events.NewNopPublisher())
	return s
}

func TestFollowUserHandler(t *testing.T) {
	t.Run("New follow", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
		followRepo.On("Create", mock.Anything, uint(1), uint(2)).Return(true, nil)
		s := newFollowTestServer(followRepo, userRepo)

		app := authedApp(1)
		app.Post("/users/:id/follow", s.FollowUser)

		req := httptest.NewRequest(http.MethodPost, "/users/2/follow", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Repeat follow", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
		followRepo.On("Create", mock.Anything, uint(1), uint(2)).Return(false, nil)
		s := newFollowTestServer(followRepo, userRepo)

		app := authedApp(1)
		app.Post("/users/:id/follow", s.FollowUser)

		req := httptest.NewRequest(http.MethodPost, "/users/2/follow", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Self follow", func(t *testing.T) {
		s := newFollowTestServer(new(MockFollowRepository), new(MockUserRepository))

		app := authedApp(1)
		app.Post("/users/:id/follow", s.FollowUser)

		req := httptest.NewRequest(http.MethodPost, "/users/1/follow", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown target", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)
		s := newFollowTestServer(followRepo, userRepo)

		app := authedApp(1)
		app.Post("/users/:id/follow", s.FollowUser)

		req := httptest.NewRequest(http.MethodPost, "/users/99/follow", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUnfollowUserHandler(t *testing.T) {
	followRepo := new(MockFollowRepository)
	followRepo.On("Delete", mock.Anything, uint(1), uint(2)).Return(true, nil)
	s := newFollowTestServer(followRepo, new(MockUserRepository))

	app := authedApp(1)
	app.Delete("/users/:id/follow", s.UnfollowUser)

	req := httptest.NewRequest(http.MethodDelete, "/users/2/follow", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body["following"])
}

func TestGetFollowStatusHandler(t *testing.T) {
	followRepo := new(MockFollowRepository)
	followRepo.On("Exists", mock.Anything, uint(1), uint(2)).Return(true, nil)
	s := newFollowTestServer(followRepo, new(MockUserRepository))

	app := authedApp(1)
	app.Get("/users/:id/follow", s.GetFollowStatus)

	req := httptest.NewRequest(http.MethodGet, "/users/2/follow", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["following"])
}

func TestGetFollowersHandler(t *testing.T) {
	followRepo := new(MockFollowRepository)
	followRepo.On("ListFollowers", mock.Anything, uint(2), 20, 0).
		Return([]*models.User{{ID: 1, Username: "alice"}}, nil)
	s := newFollowTestServer(followRepo, new(MockUserRepository))

	app := authedApp(1)
	app.Get("/users/:id/followers", s.GetFollowers)

	req := httptest.NewRequest(http.MethodGet, "/users/2/followers", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page models.Page[*models.User]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "alice", page.Items[0].Username)
}
