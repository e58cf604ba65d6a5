package mediaservice

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestValidate(t *testing.T) {
	s := NewMediaService(t.TempDir(), new(MockImageHost))

	testCases := []struct {
		name        string
		file        *File
		expectedErr error
	}{
		{
			name:        "valid png",
			file:        &File{Name: "a.png", ContentType: "image/png", Size: 100},
			expectedErr: nil,
		},
		{
			name:        "valid jpeg at the size ceiling",
			file:        &File{Name: "a.jpg", ContentType: "image/jpeg", Size: MaxImageSize},
			expectedErr: nil,
		},
		{
			name:        "not an image",
			file:        &File{Name: "a.txt", ContentType: "text/plain", Size: 100},
			expectedErr: ErrInvalidImageType,
		},
		{
			name:        "too large",
			file:        &File{Name: "a.png", ContentType: "image/png", Size: MaxImageSize + 1},
			expectedErr: ErrImageTooLarge,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Validate(tc.file)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpload(t *testing.T) {
	t.Run("success removes the staged file", func(t *testing.T) {
		host := new(MockImageHost)
		tempDir := t.TempDir()
		s := NewMediaService(tempDir, host)

		var stagedPath string
		host.On("Upload", mock.Anything, mock.Anything, "avatars").Run(func(args mock.Arguments) {
			stagedPath = args.String(1)
			// the payload must be on disk while the host reads it
			data, err := os.ReadFile(stagedPath)
			assert.NoError(t, err)
			assert.Equal(t, []byte("data"), data)
		}).Return(&UploadResult{SecureURL: "https://img.example.com/a.png"}, nil).Once()

		url, err := s.Upload(context.Background(), &File{Name: "a.png", ContentType: "image/png", Size: 4, Data: []byte("data")}, "avatars", "7")
		assert.NoError(t, err)
		assert.Equal(t, "https://img.example.com/a.png", url)

		_, err = os.Stat(stagedPath)
		assert.True(t, os.IsNotExist(err))
		host.AssertExpectations(t)
	})

	t.Run("host failure still removes the staged file", func(t *testing.T) {
		host := new(MockImageHost)
		tempDir := t.TempDir()
		s := NewMediaService(tempDir, host)

		host.On("Upload", mock.Anything, mock.Anything, "avatars").Return(nil, errors.New("boom")).Once()

		url, err := s.Upload(context.Background(), &File{Name: "a.png", ContentType: "image/png", Size: 4, Data: []byte("data")}, "avatars", "7")
		assert.Error(t, err)
		assert.Empty(t, url)

		entries, err := os.ReadDir(tempDir)
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("invalid payload never reaches the host", func(t *testing.T) {
		host := new(MockImageHost)
		s := NewMediaService(t.TempDir(), host)

		url, err := s.Upload(context.Background(), &File{Name: "a.txt", ContentType: "text/plain", Size: 4, Data: []byte("data")}, "avatars", "7")
		assert.ErrorIs(t, err, ErrInvalidImageType)
		assert.Empty(t, url)
		host.AssertNumberOfCalls(t, "Upload", 0)
	})

	t.Run("unique staged names per call", func(t *testing.T) {
		host := new(MockImageHost)
		tempDir := t.TempDir()
		s := NewMediaService(tempDir, host)

		var paths []string
		host.On("Upload", mock.Anything, mock.Anything, "comments").Run(func(args mock.Arguments) {
			paths = append(paths, args.String(1))
		}).Return(&UploadResult{SecureURL: "https://img.example.com/a.png"}, nil).Twice()

		f := &File{Name: "a.png", ContentType: "image/png", Size: 4, Data: []byte("data")}
		_, err := s.Upload(context.Background(), f, "comments", "1-1")
		assert.NoError(t, err)
		_, err = s.Upload(context.Background(), f, "comments", "1-1")
		assert.NoError(t, err)

		assert.Len(t, paths, 2)
		assert.NotEqual(t, paths[0], paths[1])
	})
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", extension("image/png"))
	assert.Equal(t, ".gif", extension("image/gif"))
	assert.Equal(t, ".webp", extension("image/webp"))
	assert.Equal(t, ".jpg", extension("image/jpeg"))
	assert.Equal(t, ".jpg", extension("image/unknown"))
}
