package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"edunest/internal/database"
	"edunest/internal/domain"
	"edunest/internal/metrics"
)

// HealthService implements the status probe
type HealthService struct {
	db *gorm.DB
}

// NewHealthService creates a new health service
func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{db: db}
}

// Check reports whether the server can reach its database
func (s *HealthService) Check(ctx context.Context) (*domain.Status, error) {
	if err := database.Ping(s.db); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if stats, err := database.GetStats(s.db); err == nil {
		metrics.UpdateDBConnections(stats.InUse, stats.Idle)
	}
	return &domain.Status{OK: true, Status: "EduNest Server is running properly."}, nil
}
