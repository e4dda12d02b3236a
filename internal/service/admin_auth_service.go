package service

import (
	"context"
	"log/slog"

	"github.com/leadform/backend/internal/metrics"
	"github.com/leadform/backend/pkg/auth"
)

// AdminAuthService checks admin login attempts.
type AdminAuthService interface {
	// VerifyCredentials reports whether email and password match the
	// configured admin.
	VerifyCredentials(ctx context.Context, email, password string) bool
}

type adminAuthService struct {
	cred    auth.Credential
	metrics *metrics.Metrics
}

// NewAdminAuthService creates an AdminAuthService for cred. m may be nil.
func NewAdminAuthService(cred auth.Credential, m *metrics.Metrics) AdminAuthService {
	if cred == nil {
		cred = auth.NoCredential{Reason: "no credential"}
	}
	return &adminAuthService{cred: cred, metrics: m}
}

func (s *adminAuthService) VerifyCredentials(ctx context.Context, email, password string) bool {
	ok := s.cred.Verify(email, password)
	result := metrics.ResultSuccess
	if !ok {
		result = metrics.ResultUnauthorized
		slog.InfoContext(ctx, "admin login rejected", "credential", s.cred.Kind())
	}
	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues(result).Inc()
	}
	return ok
}
