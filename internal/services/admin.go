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

// AdminService implements the PIN-protected record management
type AdminService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, log *zap.Logger) *AdminService {
	return &AdminService{db: db, log: log}
}

// ListInquiries returns all inquiries, newest first
func (s *AdminService) ListInquiries(ctx context.Context) ([]domain.Inquiry, error) {
	inquiries := []domain.Inquiry{}

	start := time.Now()
	err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&inquiries).Error
	metrics.RecordDBQuery("list_inquiries", time.Since(start), err)
	if err != nil {
		s.log.Error("list inquiries failed: database error", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch inquiries: %w", err)
	}

	s.log.Info("list inquiries successful", zap.Int("count", len(inquiries)))
	return inquiries, nil
}

// ListAdmissions returns all admission applications, newest first
func (s *AdminService) ListAdmissions(ctx context.Context) ([]domain.Admission, error) {
	admissions := []domain.Admission{}

	start := time.Now()
	err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&admissions).Error
	metrics.RecordDBQuery("list_admissions", time.Since(start), err)
	if err != nil {
		s.log.Error("list admissions failed: database error", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch admissions: %w", err)
	}

	s.log.Info("list admissions successful", zap.Int("count", len(admissions)))
	return admissions, nil
}

// UpdateAdmissionStatus changes the status of one admission application.
// An unknown id matches no row and still succeeds.
func (s *AdminService) UpdateAdmissionStatus(ctx context.Context, id int64, p *domain.StatusUpdate) (*domain.Envelope, error) {
	if err := util.Validate.Struct(p); err != nil {
		return nil, BadRequest(util.ValidationMessage(err))
	}

	start := time.Now()
	result := s.db.WithContext(ctx).Model(&domain.Admission{}).Where("id = ?", id).Update("status", p.Status)
	metrics.RecordDBQuery("update_admission_status", time.Since(start), result.Error)
	if result.Error != nil {
		s.log.Error("update status failed: database error", zap.Int64("id", id), zap.Error(result.Error))
		return nil, fmt.Errorf("failed to update admission status: %w", result.Error)
	}
	s.log.Info("update status successful",
		zap.Int64("id", id),
		zap.String("status", p.Status),
		zap.Int64("rows", result.RowsAffected),
	)
	return &domain.Envelope{Success: true, Message: fmt.Sprintf("Status updated to %s", p.Status)}, nil
}

// DeleteInquiry removes one inquiry. Deleting an absent id succeeds.
func (s *AdminService) DeleteInquiry(ctx context.Context, id int64) (*domain.Envelope, error) {
	start := time.Now()
	result := s.db.WithContext(ctx).Delete(&domain.Inquiry{}, id)
	metrics.RecordDBQuery("delete_inquiry", time.Since(start), result.Error)
	if result.Error != nil {
		s.log.Error("delete inquiry failed: database error", zap.Int64("id", id), zap.Error(result.Error))
		return nil, fmt.Errorf("failed to delete inquiry: %w", result.Error)
	}
	s.log.Info("delete inquiry successful", zap.Int64("id", id), zap.Int64("rows", result.RowsAffected))
	return &domain.Envelope{Success: true, Message: "Inquiry deleted successfully"}, nil
}
