package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/baseapi/user-api/internal/api/metrics"
	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/ports"
	"github.com/baseapi/user-api/internal/core/token"
)

// AuthService implements email/password login with token issuance.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	signer   token.Issuer
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	signer token.Issuer,
	throttle ports.LoginThrottle,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		signer:   signer,
		throttle: throttle,
		audit:    audit,
		log:      log,
	}
}

// Login checks the submitted credentials and returns a signed token plus the
// authenticated user with its role populated. Unknown email and wrong
// password are logged differently but both surface as ErrInvalidCredentials
// so the response cannot leak which one happened.
func (s *AuthService) Login(ctx context.Context, email, password, remoteIP string) (string, *domain.User, error) {
	if password == "" {
		return "", nil, domain.ErrMissingCredential
	}
	// Emails are stored lowercased, so the lookup, the throttle key and the
	// audit trail all use the normalized form regardless of submitted casing.
	email = normalizeEmail(email)

	// Throttle check runs before the store lookup so a brute-forced email
	// stops costing bcrypt work. Throttle outages fail open.
	if s.throttle != nil {
		locked, err := s.throttle.TooManyFailures(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle unavailable, continuing")
		} else if locked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			s.recordAudit(domain.AuditLoginThrottled, "", email, remoteIP, "too many failed attempts")
			return "", nil, domain.ErrAccountLocked
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Info().Str("remote_ip", remoteIP).Msg("login attempt for unknown email")
			s.recordFailure(ctx, email, remoteIP)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Info().Str("user_id", user.ID).Str("remote_ip", remoteIP).Msg("login attempt with wrong password")
		s.recordFailure(ctx, email, remoteIP)
		return "", nil, domain.ErrInvalidCredentials
	}

	// Correct password on an inactive account is a distinct outcome: the
	// caller proved identity but the account is locked.
	if !user.Active {
		metrics.LoginsTotal.WithLabelValues("locked").Inc()
		s.recordAudit(domain.AuditLoginLocked, user.ID, email, remoteIP, "login on inactive account")
		return "", nil, domain.ErrAccountLocked
	}

	if user.Role == nil {
		role, err := s.roles.FindByID(ctx, user.RoleID)
		if err != nil {
			return "", nil, fmt.Errorf("login resolve role: %w", err)
		}
		user.Role = role
	}

	signed, err := s.signer.Issue(user.ID, user.Role.Name)
	if err != nil {
		return "", nil, fmt.Errorf("login issue token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role.Name).Msg("user authenticated")
	return signed, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email, remoteIP string) {
	metrics.LoginsTotal.WithLabelValues("invalid").Inc()
	s.recordAudit(domain.AuditLoginFailed, "", email, remoteIP, "invalid credentials")
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
}

func (s *AuthService) recordAudit(kind domain.AuditKind, subject, email, remoteIP, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Kind:      kind,
		Subject:   subject,
		Email:     email,
		RemoteIP:  remoteIP,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	})
}
