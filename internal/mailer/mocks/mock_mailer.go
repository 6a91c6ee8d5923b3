package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/docrequest-service/internal/mailer"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
