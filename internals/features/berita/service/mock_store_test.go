package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
)

// MockStore is a mock type for the docstore.Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	args := m.Called(ctx, collection, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]docstore.Document), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, collection, key string) (*docstore.Document, error) {
	args := m.Called(ctx, collection, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docstore.Document), args.Error(1)
}

func (m *MockStore) Add(ctx context.Context, collection string, data docstore.Fields) (string, error) {
	args := m.Called(ctx, collection, data)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, collection, key string, data docstore.Fields) error {
	return m.Called(ctx, collection, key, data).Error(0)
}

func (m *MockStore) Update(ctx context.Context, collection, key string, data docstore.Fields) error {
	return m.Called(ctx, collection, key, data).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, collection, key string) error {
	return m.Called(ctx, collection, key).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}
