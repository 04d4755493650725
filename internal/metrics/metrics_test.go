package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/admin/inquiry/{id}", routeLabel("/api/admin/inquiry/1712345678901"))
	assert.Equal(t, "/api/admin/admissions", routeLabel("/api/admin/admissions"))
	assert.Equal(t, "/", routeLabel("/"))
}

func TestPrometheusMiddlewareRecordsStatus(t *testing.T) {
	handler := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodDelete, "/api/admin/inquiry/{id}", "418"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/inquiry/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodDelete, "/api/admin/inquiry/{id}", "418"))
	assert.Equal(t, before+1, after)
}

func TestRecordFallback(t *testing.T) {
	before := testutil.ToFloat64(gatewayFallbacksTotal.WithLabelValues("submit_inquiry"))
	RecordFallback("submit_inquiry")
	assert.Equal(t, before+1, testutil.ToFloat64(gatewayFallbacksTotal.WithLabelValues("submit_inquiry")))
}

func TestSubmissionAndAuthCounters(t *testing.T) {
	inquiries := submissionsTotal.WithLabelValues("inquiry")
	failures := adminAuthAttemptsTotal.WithLabelValues("failure")
	beforeInq, beforeFail := testutil.ToFloat64(inquiries), testutil.ToFloat64(failures)

	RecordInquirySubmission()
	RecordAdminAuth(false)

	assert.Equal(t, beforeInq+1, testutil.ToFloat64(inquiries))
	assert.Equal(t, beforeFail+1, testutil.ToFloat64(failures))
}

func TestUpdateDBConnections(t *testing.T) {
	UpdateDBConnections(3, 2)
	assert.Equal(t, 3.0, testutil.ToFloat64(dbConnections.WithLabelValues("in_use")))
	assert.Equal(t, 2.0, testutil.ToFloat64(dbConnections.WithLabelValues("idle")))
}
