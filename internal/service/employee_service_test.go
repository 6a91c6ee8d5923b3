package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/docrequest-service/internal/domain"
	"github.com/spec-kit/docrequest-service/internal/repository/mocks"
)

func TestListEmployeesWithoutCacheReadsRepository(t *testing.T) {
	employees := new(mocks.MockEmployeeRepository)
	svc := NewEmployeeService(employees, nil, zap.NewNop())

	roster := []domain.Employee{
		{ID: "emp-1", Name: "Carlos Ruiz", Email: "carlos@example.com"},
		{ID: "emp-2", Name: "María López", Email: "maria@example.com"},
	}
	employees.On("List", context.Background()).Return(roster, nil).Twice()

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, roster, first)

	// Without a cache every call goes back to the repository.
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	employees.AssertExpectations(t)
}

func TestListEmployeesPropagatesRepositoryError(t *testing.T) {
	employees := new(mocks.MockEmployeeRepository)
	svc := NewEmployeeService(employees, nil, zap.NewNop())

	employees.On("List", context.Background()).Return(nil, assert.AnError)

	_, err := svc.List(context.Background())

	require.ErrorIs(t, err, assert.AnError)
}
