package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/docrequest-service/internal/domain"
	"github.com/spec-kit/docrequest-service/internal/repository"
)

const (
	employeeRosterKey = "employees:roster"
	employeeRosterTTL = 5 * time.Minute
)

// EmployeeService serves the fixed addressee roster, read through a short-TTL
// Redis cache. Cache failures fall back to the database and are never surfaced.
type EmployeeService struct {
	employees repository.EmployeeRepository
	cache     *redis.Client
	logger    *zap.Logger
}

// NewEmployeeService constructs the service. cache may be nil.
func NewEmployeeService(employees repository.EmployeeRepository, cache *redis.Client, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, cache: cache, logger: logger}
}

// List returns all employees ordered by name.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}

	s.storeCache(ctx, employees)
	return employees, nil
}

func (s *EmployeeService) fromCache(ctx context.Context) ([]domain.Employee, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, employeeRosterKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("employee cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var employees []domain.Employee
	if err := json.Unmarshal(raw, &employees); err != nil {
		s.logger.Debug("employee cache decode failed", zap.Error(err))
		return nil, false
	}
	return employees, true
}

func (s *EmployeeService) storeCache(ctx context.Context, employees []domain.Employee) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(employees)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, employeeRosterKey, raw, employeeRosterTTL).Err(); err != nil {
		s.logger.Debug("employee cache write failed", zap.Error(err))
	}
}
