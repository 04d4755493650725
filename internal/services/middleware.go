package services

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"

	"edunest/internal/metrics"
)

// AdminPINHeader carries the shared admin secret.
const AdminPINHeader = "X-Admin-PIN"

// ErrInvalidAdminPIN is passed to the reject func of AdminPINMiddleware.
var ErrInvalidAdminPIN = Unauthorized("Unauthorized access. Invalid Admin PIN.")

// AdminPINMiddleware lets a request through only when its X-Admin-PIN header
// equals pin. Rejected requests are handed to reject with ErrInvalidAdminPIN.
func AdminPINMiddleware(pin string, log *zap.Logger, reject func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			candidate := r.Header.Get(AdminPINHeader)
			ok := subtle.ConstantTimeCompare([]byte(candidate), []byte(pin)) == 1
			metrics.RecordAdminAuth(ok)
			if !ok {
				log.Warn("admin PIN rejected", zap.String("path", r.URL.Path), zap.String("remote_addr", r.RemoteAddr))
				reject(w, r, ErrInvalidAdminPIN)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
