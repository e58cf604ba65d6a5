package mediaservice

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockImageHost struct {
	mock.Mock
}

func (m *MockImageHost) Upload(ctx context.Context, path string, folder string) (*UploadResult, error) {
	args := m.Called(ctx, path, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadResult), args.Error(1)
}
