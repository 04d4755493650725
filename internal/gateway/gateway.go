// Package gateway is the client side of the EduNest API. Every operation is
// tried against the backend first; when the backend cannot be reached the
// same operation is applied to the local fallback store instead.
package gateway

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"edunest/internal/domain"
	"edunest/internal/fallback"
	"edunest/internal/metrics"
	"edunest/internal/util"
	apperrors "edunest/pkg/errors"
)

// PINHeader carries the admin shared secret.
const PINHeader = "X-Admin-PIN"

// Messages returned when a submission is stored locally.
const (
	OfflineInquiryMessage   = "Inquiry received (Offline Mode)"
	OfflineAdmissionMessage = "Application submitted (Offline Mode)"
)

// Config configures a Gateway.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:5000/api.
	BaseURL string
	// AdminPIN is the shared secret accepted by the fallback admin path.
	AdminPIN string
	// Timeout bounds each backend call; 0 keeps the transport default.
	Timeout time.Duration
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the HTTP client used for backend calls.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithClock replaces the time source used for local ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// Gateway submits and administers records with local fallback.
type Gateway struct {
	cfg    Config
	client *http.Client
	slots  fallback.Slots
	log    *zap.Logger
	now    func() time.Time
}

// New creates a Gateway.
func New(cfg Config, slots fallback.Slots, log *zap.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		slots:  slots,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.cfg.BaseURL = strings.TrimRight(g.cfg.BaseURL, "/")
	return g
}

// transportError marks a backend call that did not complete: the request
// never got an answer, the answer was a 5xx, or a 2xx body was unreadable.
// Only these fall back.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return "backend unavailable: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isTransport(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}

// do performs one backend call. A non-nil out receives the decoded 2xx body.
func (g *Gateway) do(ctx context.Context, method, path, pin string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.cfg.BaseURL+path, reader)
	if err != nil {
		return &transportError{err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if pin != "" {
		req.Header.Set(PINHeader, pin)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		_, _ = io.Copy(io.Discard, resp.Body)
		return &transportError{err: fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)}
	case resp.StatusCode >= http.StatusBadRequest:
		return rejection(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &transportError{err: fmt.Errorf("decode %s %s: %w", method, path, err)}
	}
	return nil
}

// rejection turns a 4xx answer into an AppError carrying the server's message.
func rejection(resp *http.Response) error {
	var body domain.ErrorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	err := apperrors.Rejected(resp.StatusCode, msg)
	if resp.StatusCode == http.StatusUnauthorized {
		err.Code = apperrors.ErrCodeUnauthorized
	}
	return err
}

// useFallback logs and counts a fallback for operation.
func (g *Gateway) useFallback(operation string, cause error) {
	g.log.Warn("backend unavailable, using local storage",
		zap.String("operation", operation),
		zap.Error(cause),
	)
	metrics.RecordFallback(operation)
}

// pinMatches compares a candidate against the shared secret.
func (g *Gateway) pinMatches(pin string) bool {
	return subtle.ConstantTimeCompare([]byte(pin), []byte(g.cfg.AdminPIN)) == 1
}

// validate checks a request at the boundary, before any backend call.
func validate(req any) error {
	if err := util.Validate.Struct(req); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeValidation, util.ValidationMessage(err), err)
	}
	return nil
}

// timestamp is the creation time of a locally stored record.
func (g *Gateway) timestamp() time.Time {
	return g.now().UTC().Truncate(time.Millisecond)
}

// nextID is a millisecond timestamp, bumped past maxID so local ids stay unique.
func nextID(at time.Time, maxID int64) int64 {
	id := at.UnixMilli()
	if id <= maxID {
		id = maxID + 1
	}
	return id
}

// CheckStatus reports whether the backend answers its status probe.
func (g *Gateway) CheckStatus(ctx context.Context) bool {
	var status domain.Status
	return g.do(ctx, http.MethodGet, "/status", "", nil, &status) == nil
}
