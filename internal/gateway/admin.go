package gateway

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"edunest/internal/domain"
	"edunest/internal/fallback"
	apperrors "edunest/pkg/errors"
)

var errInvalidPIN = apperrors.New(apperrors.ErrCodeUnauthorized, "Invalid PIN")

// VerifyPIN probes a protected backend route with pin. When the backend is
// unreachable the pin is compared with the configured shared secret.
func (g *Gateway) VerifyPIN(ctx context.Context, pin string) bool {
	err := g.do(ctx, http.MethodGet, "/admin/admissions", pin, nil, nil)
	if err == nil {
		return true
	}
	if !isTransport(err) {
		return false
	}
	g.useFallback("verify_pin", err)
	return g.pinMatches(pin)
}

// GetInquiries lists inquiries, newest first.
func (g *Gateway) GetInquiries(ctx context.Context, pin string) ([]domain.Inquiry, error) {
	var inquiries []domain.Inquiry
	err := g.do(ctx, http.MethodGet, "/admin/inquiries", pin, nil, &inquiries)
	if err == nil {
		return inquiries, nil
	}
	if !isTransport(err) {
		return nil, err
	}
	g.useFallback("get_inquiries", err)

	if !g.pinMatches(pin) {
		return nil, errInvalidPIN
	}
	inquiries, err = fallback.Read[domain.Inquiry](ctx, g.slots, fallback.Inquiries)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to load local inquiries", err)
	}
	slices.SortStableFunc(inquiries, func(a, b domain.Inquiry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return inquiries, nil
}

// GetAdmissions lists admission applications, newest first.
func (g *Gateway) GetAdmissions(ctx context.Context, pin string) ([]domain.Admission, error) {
	var admissions []domain.Admission
	err := g.do(ctx, http.MethodGet, "/admin/admissions", pin, nil, &admissions)
	if err == nil {
		return admissions, nil
	}
	if !isTransport(err) {
		return nil, err
	}
	g.useFallback("get_admissions", err)

	if !g.pinMatches(pin) {
		return nil, errInvalidPIN
	}
	admissions, err = fallback.Read[domain.Admission](ctx, g.slots, fallback.Admissions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to load local admissions", err)
	}
	slices.SortStableFunc(admissions, func(a, b domain.Admission) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return admissions, nil
}

// UpdateAdmissionStatus sets the status of one admission. Locally, an unknown
// id is a no-op.
func (g *Gateway) UpdateAdmissionStatus(ctx context.Context, id int64, status, pin string) (*domain.Envelope, error) {
	update := domain.StatusUpdate{Status: status}
	if err := validate(update); err != nil {
		return nil, err
	}

	var env domain.Envelope
	err := g.do(ctx, http.MethodPut, fmt.Sprintf("/admin/admission/%d", id), pin, update, &env)
	if err == nil {
		return &env, nil
	}
	if !isTransport(err) {
		return nil, err
	}
	g.useFallback("update_admission_status", err)

	if !g.pinMatches(pin) {
		return nil, errInvalidPIN
	}
	admissions, err := fallback.Read[domain.Admission](ctx, g.slots, fallback.Admissions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to load local admissions", err)
	}
	idx := slices.IndexFunc(admissions, func(a domain.Admission) bool { return a.ID == id })
	if idx >= 0 {
		admissions[idx].Status = status
		if err := fallback.Write(ctx, g.slots, fallback.Admissions, admissions); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to save local admissions", err)
		}
	}
	return &domain.Envelope{Success: true, Message: fmt.Sprintf("Status updated to %s (Offline Mode)", status)}, nil
}

// DeleteInquiry removes one inquiry. Locally, an unknown id is a no-op.
func (g *Gateway) DeleteInquiry(ctx context.Context, id int64, pin string) (*domain.Envelope, error) {
	var env domain.Envelope
	err := g.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/inquiry/%d", id), pin, nil, &env)
	if err == nil {
		return &env, nil
	}
	if !isTransport(err) {
		return nil, err
	}
	g.useFallback("delete_inquiry", err)

	if !g.pinMatches(pin) {
		return nil, errInvalidPIN
	}
	inquiries, err := fallback.Read[domain.Inquiry](ctx, g.slots, fallback.Inquiries)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to load local inquiries", err)
	}
	before := len(inquiries)
	inquiries = slices.DeleteFunc(inquiries, func(i domain.Inquiry) bool { return i.ID == id })
	if len(inquiries) != before {
		if err := fallback.Write(ctx, g.slots, fallback.Inquiries, inquiries); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to save local inquiries", err)
		}
	}
	return &domain.Envelope{Success: true, Message: "Inquiry deleted (Offline Mode)"}, nil
}
