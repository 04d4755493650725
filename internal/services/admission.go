package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"edunest/internal/domain"
	"edunest/internal/metrics"
	"edunest/internal/util"
)

// AdmissionService implements the public admission application form
type AdmissionService struct {
	db           *gorm.DB
	emailService *EmailService
	log          *zap.Logger
}

// NewAdmissionService creates a new admission service
func NewAdmissionService(db *gorm.DB, emailService *EmailService, log *zap.Logger) *AdmissionService {
	return &AdmissionService{
		db:           db,
		emailService: emailService,
		log:          log,
	}
}

// Submit stores a new admission application with status pending
func (s *AdmissionService) Submit(ctx context.Context, p *domain.AdmissionRequest) (*domain.Envelope, error) {
	p.Normalize()
	s.log.Info("submit request", zap.String("child_name", p.ChildName), zap.String("program", p.Program))

	if err := util.Validate.Struct(p); err != nil {
		s.log.Info("submit rejected", zap.String("reason", util.ValidationMessage(err)))
		if util.MissingRequired(err) {
			return nil, BadRequest("All primary fields are required.")
		}
		return nil, BadRequest(util.ValidationMessage(err))
	}

	admission := p.Record(0, time.Time{})

	start := time.Now()
	err := s.db.WithContext(ctx).Create(&admission).Error
	metrics.RecordDBQuery("insert_admission", time.Since(start), err)
	if err != nil {
		s.log.Error("submit failed: database error", zap.Error(err))
		return nil, fmt.Errorf("failed to submit admission application: %w", err)
	}

	s.log.Info("submit successful", zap.Int64("id", admission.ID))
	metrics.RecordAdmissionSubmission()

	go func() {
		if err := s.emailService.NotifyAdmission(&admission); err != nil {
			s.log.Warn("failed to send notification email", zap.Int64("id", admission.ID), zap.Error(err))
		}
	}()

	id := admission.ID
	return &domain.Envelope{
		Success: true,
		Message: "Admission application submitted successfully!",
		ID:      &id,
	}, nil
}
