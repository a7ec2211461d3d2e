// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/casinoremedial/backend/internal/client"
	"github.com/casinoremedial/backend/internal/core"
)

// Accounts is the slice of the client store the auth flows need.
type Accounts interface {
	GetByEmail(ctx context.Context, email string) (*client.Client, error)
	SetVerificationCode(ctx context.Context, email, code string, expires time.Time) error
	ConsumeVerificationCode(ctx context.Context, email, code string) error
	SetRecoveryCode(ctx context.Context, email, code string, expires time.Time) error
	CheckRecoveryCode(ctx context.Context, email, code string) error
	ResetPasswordWithCode(ctx context.Context, email, code, passwordHash string) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(accountID, role string) (string, error)
}

// Revoker blacklists a token ID until it would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Mailer delivers the one-time codes.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
	SendRecoveryCode(ctx context.Context, to, name, code string) error
}

type Service struct {
	accounts        Accounts
	tokens          TokenIssuer
	revoker         Revoker
	mailer          Mailer
	verificationTTL time.Duration
	recoveryTTL     time.Duration
	logger          *slog.Logger
}

func NewService(
	accounts Accounts,
	tokens TokenIssuer,
	revoker Revoker,
	mailer Mailer,
	verificationTTL time.Duration,
	recoveryTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:        accounts,
		tokens:          tokens,
		revoker:         revoker,
		mailer:          mailer,
		verificationTTL: verificationTTL,
		recoveryTTL:     recoveryTTL,
		logger:          logger,
	}
}

// Login authenticates by email and password. A missing account and a wrong
// password return the same error after the same amount of work, so callers
// cannot probe which emails are registered.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*client.Client, string, error) {
	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyPasswordTimingSafe("", password, false)
			return nil, "", core.InvalidCredentialsError()
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}

	if !core.VerifyPasswordTimingSafe(acct.PasswordHash, password, true) {
		return nil, "", core.InvalidCredentialsError()
	}

	token, err := s.tokens.Issue(acct.ID, acct.Role)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}

	s.logger.Info("client logged in", "client_id", acct.ID)

	return acct, token, nil
}

// Logout revokes the session's token ID. The cookie clearing happens at the
// handler.
func (s *Service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// SendVerification issues a fresh verification code for an unverified
// account and emails it. Each call replaces any earlier code.
func (s *Service) SendVerification(ctx context.Context, email string) error {
	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("client")
		}
		return fmt.Errorf("send verification: %w", err)
	}

	if acct.IsVerified {
		return core.AlreadyVerifiedError()
	}

	code, err := core.GenerateCode()
	if err != nil {
		return fmt.Errorf("send verification: %w", err)
	}

	expires := core.CodeExpiry(s.verificationTTL)
	if err := s.accounts.SetVerificationCode(ctx, acct.Email, code, expires); err != nil {
		return fmt.Errorf("send verification: %w", err)
	}

	if err := s.mailer.SendVerificationCode(ctx, acct.Email, acct.FullName, code); err != nil {
		s.logger.Error("verification email failed",
			"client_id", acct.ID,
			"error", err,
		)
		return core.NotificationFailedError()
	}

	return nil
}

// VerifyEmail redeems a verification code. The store consumes the code
// atomically, so a second attempt with the same code fails.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	err := s.accounts.ConsumeVerificationCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, core.ErrCodeInvalidOrExpired) {
			return core.CodeInvalidOrExpiredError()
		}
		return fmt.Errorf("verify email: %w", err)
	}

	s.logger.Info("email verified", "email", client.NormalizeEmail(email))
	return nil
}

// RequestRecovery issues a password recovery code and emails it.
func (s *Service) RequestRecovery(ctx context.Context, email string) error {
	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("client")
		}
		return fmt.Errorf("request recovery: %w", err)
	}

	code, err := core.GenerateCode()
	if err != nil {
		return fmt.Errorf("request recovery: %w", err)
	}

	expires := core.CodeExpiry(s.recoveryTTL)
	if err := s.accounts.SetRecoveryCode(ctx, acct.Email, code, expires); err != nil {
		return fmt.Errorf("request recovery: %w", err)
	}

	if err := s.mailer.SendRecoveryCode(ctx, acct.Email, acct.FullName, code); err != nil {
		s.logger.Error("recovery email failed",
			"client_id", acct.ID,
			"error", err,
		)
		return core.NotificationFailedError()
	}

	return nil
}

// VerifyRecoveryCode checks a recovery code without consuming it, so the
// frontend can confirm the code before asking for the new password.
func (s *Service) VerifyRecoveryCode(ctx context.Context, email, code string) error {
	err := s.accounts.CheckRecoveryCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, core.ErrCodeInvalidOrExpired) {
			return core.CodeInvalidOrExpiredError()
		}
		return fmt.Errorf("verify recovery code: %w", err)
	}
	return nil
}

// ResetPassword swaps the password hash, re-validating the code atomically
// at the store so an expired code leaves the hash unchanged.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if len(newPassword) < 8 {
		return core.WeakPasswordError()
	}

	hash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.accounts.ResetPasswordWithCode(ctx, email, code, hash); err != nil {
		if errors.Is(err, core.ErrCodeInvalidOrExpired) {
			return core.CodeInvalidOrExpiredError()
		}
		return fmt.Errorf("reset password: %w", err)
	}

	s.logger.Info("password reset", "email", client.NormalizeEmail(email))
	return nil
}
