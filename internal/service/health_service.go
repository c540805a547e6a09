package service

import (
	"context"
	"fmt"

	"photofeed/internal/repository"
)

// HealthStatus is the result of a readiness probe.
type HealthStatus struct {
	Status string `json:"status"`
	Tables int    `json:"tables"`
}

type HealthService interface {
	Check(ctx context.Context) (*HealthStatus, error)
}

type healthService struct {
	healthRepo repository.HealthRepository
}

func NewHealthService(healthRepo repository.HealthRepository) HealthService {
	return &healthService{healthRepo: healthRepo}
}

func (s *healthService) Check(ctx context.Context) (*HealthStatus, error) {
	if err := s.healthRepo.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database ping: %w", err)
	}

	tables, err := s.healthRepo.CountTables(ctx)
	if err != nil {
		return nil, err
	}

	return &HealthStatus{Status: "ok", Tables: tables}, nil
}
