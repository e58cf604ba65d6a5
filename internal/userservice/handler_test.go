package userservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moonhalo/blogapi/internal/common"
)

func setupTestEnvironment(t *testing.T) (*UserService, *MockMessageProducer, func() error) {
	db := common.TestDB("file://../../migrations", t)

	producer := new(MockMessageProducer)
	s := NewUserService(db, producer, []byte("test-secret-test-secret-test-1234"))

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM users")
		return err
	}

	return s, producer, cleanup
}

func TestRegisterUser(t *testing.T) {
	s, producer, cleanup := setupTestEnvironment(t)
	producer.On("Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.UserExchange).Return(nil)

	t.Run("valid user", func(t *testing.T) {
		user, err := s.RegisterUser(context.Background(), "testuser", "Test User", "testuser@example.com", "secret123")
		assert.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, RoleUser, user.Role)
		assert.Equal(t, 1, user.Version)
		producer.AssertCalled(t, "Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.UserExchange)

		assert.NoError(t, cleanup())
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.RegisterUser(context.Background(), "testuser", "Test User", "testuser@example.com", "secret123")
		assert.NoError(t, err)

		user, err := s.RegisterUser(context.Background(), "otheruser", "Other User", "testuser@example.com", "secret123")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
		assert.Nil(t, user)

		assert.NoError(t, cleanup())
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := s.RegisterUser(context.Background(), "testuser", "Test User", "testuser@example.com", "secret123")
		assert.NoError(t, err)

		user, err := s.RegisterUser(context.Background(), "testuser", "Other User", "other@example.com", "secret123")
		assert.ErrorIs(t, err, ErrDuplicateUsername)
		assert.Nil(t, user)

		assert.NoError(t, cleanup())
	})

	t.Run("invalid input", func(t *testing.T) {
		user, err := s.RegisterUser(context.Background(), "ab", "Test User", "not-an-email", "short")
		assert.ErrorAs(t, err, &common.ValidationError{})
		assert.Nil(t, user)
	})
}

func TestAuthenticateUser(t *testing.T) {
	s, producer, cleanup := setupTestEnvironment(t)
	producer.On("Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.UserExchange).Return(nil)

	_, err := s.RegisterUser(context.Background(), "testuser", "Test User", "testuser@example.com", "secret123")
	assert.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := s.AuthenticateUser(context.Background(), "testuser@example.com", "secret123")
		assert.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		user, err := s.AuthenticateUser(context.Background(), "testuser@example.com", "wrongpass1")
		assert.ErrorIs(t, err, ErrAuthenticationFailure)
		assert.Nil(t, user)
	})

	t.Run("unknown email", func(t *testing.T) {
		user, err := s.AuthenticateUser(context.Background(), "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrAuthenticationFailure)
		assert.Nil(t, user)
	})

	assert.NoError(t, cleanup())
}

func TestUpdateProfile(t *testing.T) {
	s, producer, cleanup := setupTestEnvironment(t)
	producer.On("Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.UserExchange).Return(nil)

	registered, err := s.RegisterUser(context.Background(), "testuser", "Test User", "testuser@example.com", "secret123")
	assert.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		bio := "I write about Go."
		website := "https://example.com"

		user, err := s.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{
			Bio:             &bio,
			PersonalWebsite: &website,
		})
		assert.NoError(t, err)
		assert.Equal(t, bio, user.Bio)
		assert.Equal(t, website, user.PersonalWebsite)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, "testuser@example.com", user.Email)
	})

	t.Run("invalid website", func(t *testing.T) {
		website := "not-a-url"
		user, err := s.UpdateProfile(context.Background(), registered.ID, &UpdateProfileRequest{
			PersonalWebsite: &website,
		})
		assert.ErrorAs(t, err, &common.ValidationError{})
		assert.Nil(t, user)
	})

	t.Run("unknown user", func(t *testing.T) {
		bio := "ghost"
		user, err := s.UpdateProfile(context.Background(), 999999, &UpdateProfileRequest{Bio: &bio})
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
		assert.Nil(t, user)
	})

	assert.NoError(t, cleanup())
}

func TestUpdatePassword(t *testing.T) {
	s, producer, cleanup := setupTestEnvironment(t)
	producer.On("Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.UserExchange).Return(nil)

	registered, err := s.RegisterUser(context.Background(), "testuser", "Test User", "testuser@example.com", "secret123")
	assert.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := s.UpdatePassword(context.Background(), registered.ID, "wrongpass1", "newsecret123")
		assert.ErrorIs(t, err, ErrAuthenticationFailure)
	})

	t.Run("valid change", func(t *testing.T) {
		err := s.UpdatePassword(context.Background(), registered.ID, "secret123", "newsecret123")
		assert.NoError(t, err)

		_, err = s.AuthenticateUser(context.Background(), "testuser@example.com", "secret123")
		assert.ErrorIs(t, err, ErrAuthenticationFailure)

		user, err := s.AuthenticateUser(context.Background(), "testuser@example.com", "newsecret123")
		assert.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	assert.NoError(t, cleanup())
}

func TestUpdateAvatar(t *testing.T) {
	s, producer, cleanup := setupTestEnvironment(t)
	producer.On("Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.UserExchange).Return(nil)

	registered, err := s.RegisterUser(context.Background(), "testuser", "Test User", "testuser@example.com", "secret123")
	assert.NoError(t, err)

	t.Run("valid avatar", func(t *testing.T) {
		user, err := s.UpdateAvatar(context.Background(), registered.ID, "https://img.example.com/avatar.png")
		assert.NoError(t, err)
		assert.Equal(t, "https://img.example.com/avatar.png", user.ImageURL)
	})

	t.Run("missing url", func(t *testing.T) {
		user, err := s.UpdateAvatar(context.Background(), registered.ID, "")
		assert.ErrorAs(t, err, &common.ValidationError{})
		assert.Nil(t, user)
	})

	assert.NoError(t, cleanup())
}
