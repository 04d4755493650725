package gateway

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"edunest/internal/domain"
	"edunest/internal/fallback"
	apperrors "edunest/pkg/errors"
)

// SubmitInquiry sends an inquiry to the backend, or stores it locally when
// the backend is unavailable.
func (g *Gateway) SubmitInquiry(ctx context.Context, req domain.InquiryRequest) (*domain.Envelope, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	var env domain.Envelope
	err := g.do(ctx, http.MethodPost, "/inquiry", "", req, &env)
	if err == nil {
		return &env, nil
	}
	if !isTransport(err) {
		return nil, err
	}
	g.useFallback("submit_inquiry", err)

	inquiries, err := fallback.Read[domain.Inquiry](ctx, g.slots, fallback.Inquiries)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to load local inquiries", err)
	}
	var maxID int64
	for _, inq := range inquiries {
		maxID = max(maxID, inq.ID)
	}
	now := g.timestamp()
	record := req.Record(nextID(now, maxID), now)
	inquiries = append(inquiries, record)
	if err := fallback.Write(ctx, g.slots, fallback.Inquiries, inquiries); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to save inquiry locally", err)
	}

	g.log.Info("inquiry stored locally", zap.Int64("id", record.ID))
	return &domain.Envelope{Success: true, Message: OfflineInquiryMessage}, nil
}

// SubmitAdmission sends an admission application to the backend, or stores
// it locally with status pending when the backend is unavailable.
func (g *Gateway) SubmitAdmission(ctx context.Context, req domain.AdmissionRequest) (*domain.Envelope, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	var env domain.Envelope
	err := g.do(ctx, http.MethodPost, "/admission", "", req, &env)
	if err == nil {
		return &env, nil
	}
	if !isTransport(err) {
		return nil, err
	}
	g.useFallback("submit_admission", err)

	admissions, err := fallback.Read[domain.Admission](ctx, g.slots, fallback.Admissions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to load local admissions", err)
	}
	var maxID int64
	for _, adm := range admissions {
		maxID = max(maxID, adm.ID)
	}
	now := g.timestamp()
	record := req.Record(nextID(now, maxID), now)
	admissions = append(admissions, record)
	if err := fallback.Write(ctx, g.slots, fallback.Admissions, admissions); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to save admission locally", err)
	}

	g.log.Info("admission stored locally", zap.Int64("id", record.ID))
	return &domain.Envelope{Success: true, Message: OfflineAdmissionMessage}, nil
}
