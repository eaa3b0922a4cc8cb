package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockExportStorage is a mock implementation of the export object store
type MockExportStorage struct {
	mock.Mock
}

func (m *MockExportStorage) UploadObject(ctx context.Context, objectKey string, body []byte, contentType string) error {
	args := m.Called(ctx, objectKey, body, contentType)
	return args.Error(0)
}

func (m *MockExportStorage) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expiration)
	return args.String(0), args.Error(1)
}
