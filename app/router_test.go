package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moonhalo/blogapi/internal/mediaservice"
)

// httprouter panics at registration time when a static segment and a wildcard
// collide in the same method tree, so a bad route table kills the server
// before it can bind.
func TestRoutesRegister(t *testing.T) {
	app := newBareApplication(t)
	assert.NotPanics(t, func() { app.routes() })
}

func TestAccountAndBrowseRoutes(t *testing.T) {
	app, _, host := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	cookie, userId := ts.signUpAndIn(t, "grace", "grace@example.com", "secret123")

	status, _, body := ts.post(t, "/v1/blogs", map[string]any{
		"title":   "Tagged Blog",
		"content": "Some content.",
		"tags":    []string{"go", "postgres"},
	}, cookie)
	assert.Equal(t, http.StatusCreated, status)

	blog, ok := body["blog"].(map[string]any)
	assert.True(t, ok)
	blogId := int(blog["id"].(float64))

	t.Run("tags", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/tags", nil)
		assert.Equal(t, http.StatusOK, status)

		tags, ok := body["tags"].([]any)
		assert.True(t, ok)
		assert.Contains(t, tags, "go")
	})

	t.Run("blogs by user", func(t *testing.T) {
		status, _, body := ts.get(t, fmt.Sprintf("/v1/users/%d/blogs", userId), nil)
		assert.Equal(t, http.StatusOK, status)

		blogs, ok := body["blogs"].([]any)
		assert.True(t, ok)
		assert.Len(t, blogs, 1)
	})

	t.Run("user by id", func(t *testing.T) {
		status, _, body := ts.get(t, fmt.Sprintf("/v1/users/%d", userId), nil)
		assert.Equal(t, http.StatusOK, status)

		user, ok := body["user"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "grace", user["username"])
	})

	t.Run("blog by id", func(t *testing.T) {
		status, _, body := ts.get(t, fmt.Sprintf("/v1/blogs/%d", blogId), nil)
		assert.Equal(t, http.StatusOK, status)

		got, ok := body["blog"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "tagged-blog", got["slug"])
	})

	t.Run("avatar update", func(t *testing.T) {
		host.On("Upload", mock.Anything, mock.Anything, "avatars").Return(&mediaservice.UploadResult{SecureURL: "https://img.example.com/a.png"}, nil).Once()

		status, _, body := ts.postMultipart(t, "/v1/auth/me/avatar", nil, "image", "me.png", "image/png", []byte("imagedata"), cookie)
		assert.Equal(t, http.StatusOK, status)

		user, ok := body["user"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "https://img.example.com/a.png", user["image_url"])
		host.AssertExpectations(t)
	})

	t.Run("password update", func(t *testing.T) {
		status, _, _ := ts.put(t, "/v1/auth/me/password", map[string]string{
			"current_password": "secret123",
			"new_password":     "newsecret123",
		}, cookie)
		assert.Equal(t, http.StatusOK, status)

		// the old password no longer signs in
		status, _, _ = ts.post(t, "/v1/auth/sign-in", map[string]string{
			"email":    "grace@example.com",
			"password": "secret123",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _, _ = ts.post(t, "/v1/auth/sign-in", map[string]string{
			"email":    "grace@example.com",
			"password": "newsecret123",
		}, nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("password update without cookie", func(t *testing.T) {
		status, _, _ := ts.put(t, "/v1/auth/me/password", map[string]string{
			"current_password": "newsecret123",
			"new_password":     "another123",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
