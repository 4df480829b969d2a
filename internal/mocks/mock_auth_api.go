package mocks

import (
	"context"

	"github.com/cinetick/cinetick-go/internal/domain"
)

type MockAuthAPI struct {
	domain.AuthAPI
	LoginFunc    func(ctx context.Context, email, password string) (*domain.Credentials, error)
	RegisterFunc func(ctx context.Context, name, email, password string) (*domain.User, error)
}

func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (*domain.Credentials, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *MockAuthAPI) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return m.RegisterFunc(ctx, name, email, password)
}
