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

// InquiryService implements the public inquiry form
type InquiryService struct {
	db           *gorm.DB
	emailService *EmailService
	log          *zap.Logger
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(db *gorm.DB, emailService *EmailService, log *zap.Logger) *InquiryService {
	return &InquiryService{
		db:           db,
		emailService: emailService,
		log:          log,
	}
}

// Submit stores a new inquiry
func (s *InquiryService) Submit(ctx context.Context, p *domain.InquiryRequest) (*domain.Envelope, error) {
	p.Normalize()
	s.log.Info("submit request", zap.String("name", p.Name), zap.String("email", p.Email))

	if err := util.Validate.Struct(p); err != nil {
		s.log.Info("submit rejected", zap.String("reason", util.ValidationMessage(err)))
		if util.MissingRequired(err) {
			return nil, BadRequest("Name, email, and phone are required.")
		}
		return nil, BadRequest(util.ValidationMessage(err))
	}

	inquiry := p.Record(0, time.Time{})

	start := time.Now()
	err := s.db.WithContext(ctx).Create(&inquiry).Error
	metrics.RecordDBQuery("insert_inquiry", time.Since(start), err)
	if err != nil {
		s.log.Error("submit failed: database error", zap.Error(err))
		return nil, fmt.Errorf("failed to submit inquiry: %w", err)
	}

	s.log.Info("submit successful", zap.Int64("id", inquiry.ID))
	metrics.RecordInquirySubmission()

	// Notify the office asynchronously; a mail failure never fails the submission.
	go func() {
		if err := s.emailService.NotifyInquiry(&inquiry); err != nil {
			s.log.Warn("failed to send notification email", zap.Int64("id", inquiry.ID), zap.Error(err))
		}
	}()

	id := inquiry.ID
	return &domain.Envelope{
		Success: true,
		Message: "Inquiry submitted successfully!",
		ID:      &id,
	}, nil
}
