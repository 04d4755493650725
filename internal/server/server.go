// Package server mounts the EduNest HTTP/JSON API on a goa muxer.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"
	goa "goa.design/goa/v3/pkg"

	"edunest/internal/config"
	"edunest/internal/domain"
	"edunest/internal/metrics"
	"edunest/internal/services"
)

// Services groups the services served over HTTP.
type Services struct {
	Health    *services.HealthService
	Inquiry   *services.InquiryService
	Admission *services.AdmissionService
	Admin     *services.AdminService
}

// Server holds the HTTP handlers.
type Server struct {
	svcs  Services
	mux   goahttp.Muxer
	admin func(http.Handler) http.Handler
	log   *zap.Logger
}

// New builds the root handler: routes on a goa muxer wrapped in the
// security, CORS, request ID, logging and metrics middleware.
func New(cfg *config.Config, svcs Services, log *zap.Logger) http.Handler {
	s := &Server{
		svcs: svcs,
		mux:  goahttp.NewMuxer(),
		log:  log,
	}
	s.admin = services.AdminPINMiddleware(cfg.Admin.PIN, log, func(w http.ResponseWriter, r *http.Request, err error) {
		s.writeError(r.Context(), w, err)
	})
	s.mount()

	var handler http.Handler = s.mux
	handler = metrics.PrometheusMiddleware(handler)
	handler = requestLogging(handler, log)
	handler = middleware.PopulateRequestContext()(handler)
	handler = middleware.RequestID()(handler)
	handler = setupCORS(handler, cfg)
	handler = setupSecurityHeaders(handler, cfg)
	return handler
}

func (s *Server) mount() {
	s.mux.Handle(http.MethodGet, "/metrics", promhttp.Handler().ServeHTTP)
	s.mux.Handle(http.MethodGet, "/api/status", s.status)
	s.mux.Handle(http.MethodPost, "/api/inquiry", s.submitInquiry)
	s.mux.Handle(http.MethodPost, "/api/admission", s.submitAdmission)
	s.mux.Handle(http.MethodGet, "/api/admin/inquiries", s.protect(s.listInquiries))
	s.mux.Handle(http.MethodGet, "/api/admin/admissions", s.protect(s.listAdmissions))
	s.mux.Handle(http.MethodPut, "/api/admin/admission/{id}", s.protect(s.updateAdmissionStatus))
	s.mux.Handle(http.MethodDelete, "/api/admin/inquiry/{id}", s.protect(s.deleteInquiry))
}

func (s *Server) protect(h http.HandlerFunc) http.HandlerFunc {
	return s.admin(h).ServeHTTP
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	res, err := s.svcs.Health.Check(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusOK, res)
}

func (s *Server) submitInquiry(w http.ResponseWriter, r *http.Request) {
	var p domain.InquiryRequest
	if err := goahttp.RequestDecoder(r).Decode(&p); err != nil {
		s.writeError(r.Context(), w, services.BadRequest("Invalid request body."))
		return
	}
	res, err := s.svcs.Inquiry.Submit(r.Context(), &p)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusCreated, res)
}

func (s *Server) submitAdmission(w http.ResponseWriter, r *http.Request) {
	var p domain.AdmissionRequest
	if err := goahttp.RequestDecoder(r).Decode(&p); err != nil {
		s.writeError(r.Context(), w, services.BadRequest("Invalid request body."))
		return
	}
	res, err := s.svcs.Admission.Submit(r.Context(), &p)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusCreated, res)
}

func (s *Server) listInquiries(w http.ResponseWriter, r *http.Request) {
	res, err := s.svcs.Admin.ListInquiries(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusOK, res)
}

func (s *Server) listAdmissions(w http.ResponseWriter, r *http.Request) {
	res, err := s.svcs.Admin.ListAdmissions(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusOK, res)
}

func (s *Server) updateAdmissionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	var p domain.StatusUpdate
	if err := goahttp.RequestDecoder(r).Decode(&p); err != nil {
		s.writeError(r.Context(), w, services.BadRequest("Invalid request body."))
		return
	}
	res, err := s.svcs.Admin.UpdateAdmissionStatus(r.Context(), id, &p)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusOK, res)
}

func (s *Server) deleteInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	res, err := s.svcs.Admin.DeleteInquiry(r.Context(), id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.encode(r.Context(), w, http.StatusOK, res)
}

func (s *Server) pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(s.mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, services.BadRequest("Invalid id.")
	}
	return id, nil
}

func (s *Server) encode(ctx context.Context, w http.ResponseWriter, status int, v any) {
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps service errors to their status; anything else is a 500
// whose cause is logged but not sent.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error."

	var se *goa.ServiceError
	if errors.As(err, &se) {
		switch se.Name {
		case services.ErrNameBadRequest:
			status, msg = http.StatusBadRequest, se.Message
		case services.ErrNameUnauthorized:
			status, msg = http.StatusUnauthorized, se.Message
		}
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	s.encode(ctx, w, status, domain.ErrorBody{Error: msg})
}
