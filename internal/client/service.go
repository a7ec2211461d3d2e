// AngelaMos | 2026
// service.go

package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/casinoremedial/backend/internal/core"
)

// Mailer delivers verification codes to newly registered clients.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
}

type Service struct {
	repo            Repository
	mailer          Mailer
	verificationTTL time.Duration
	logger          *slog.Logger
}

func NewService(
	repo Repository,
	mailer Mailer,
	verificationTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:            repo,
		mailer:          mailer,
		verificationTTL: verificationTTL,
		logger:          logger,
	}
}

// Register creates an unverified account and emails its first verification
// code. A failed send does not roll back the account; the caller is told so
// it can report a degraded success.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*Client, bool, error) {
	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, false, fmt.Errorf("register: %w", err)
	}

	code, err := core.GenerateCode()
	if err != nil {
		return nil, false, fmt.Errorf("register: %w", err)
	}
	expires := core.CodeExpiry(s.verificationTTL)

	c := &Client{
		FullName:            req.FullName,
		Email:               NormalizeEmail(req.Email),
		PasswordHash:        hash,
		Age:                 req.Age,
		Country:             req.Country,
		Role:                RoleClient,
		IsVerified:          false,
		VerificationCode:    &code,
		VerificationExpires: &expires,
	}

	if err := c.Validate(); err != nil {
		return nil, false, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateEmail) {
			return nil, false, core.DuplicateEmailError()
		}
		return nil, false, fmt.Errorf("register: %w", err)
	}

	mailed := true
	if err := s.mailer.SendVerificationCode(ctx, c.Email, c.FullName, code); err != nil {
		mailed = false
		s.logger.Warn("verification email failed after registration",
			"client_id", c.ID,
			"error", err,
		)
	}

	return c, mailed, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("client")
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Client, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Update applies the provided fields to an existing client. Changing email
// re-normalizes it and can collide with another account.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateRequest,
) (*Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		c.FullName = *req.FullName
	}
	if req.Email != nil {
		c.Email = NormalizeEmail(*req.Email)
	}
	if req.Age != nil {
		c.Age = *req.Age
	}
	if req.Country != nil {
		c.Country = *req.Country
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateEmail):
			return nil, core.DuplicateEmailError()
		case errors.Is(err, core.ErrNotFound):
			return nil, core.NotFoundError("client")
		}
		return nil, fmt.Errorf("update client: %w", err)
	}

	return c, nil
}

// UpdatePassword requires the current password before accepting a new one.
func (s *Service) UpdatePassword(
	ctx context.Context,
	id, currentPassword, newPassword string,
) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !core.VerifyPassword(c.PasswordHash, currentPassword) {
		return core.NewAppError(
			core.ErrInvalidCredentials,
			"current password is incorrect",
			http.StatusUnauthorized,
			"INVALID_CREDENTIALS",
		)
	}

	if len(newPassword) < 8 {
		return core.WeakPasswordError()
	}

	hash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("client")
		}
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("client")
		}
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// EnsureAdmin guarantees a verified administrator exists for the given
// credentials: missing accounts are created, existing ones promoted. Run once
// at startup when admin credentials are configured.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		if existing.IsAdmin() && existing.IsVerified {
			return nil
		}
		existing.Role = RoleAdmin
		existing.IsVerified = true
		if err := s.repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		s.logger.Info("existing account promoted to admin", "email", email)
		return nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	admin := &Client{
		FullName:     "Administrator",
		Email:        email,
		PasswordHash: hash,
		Age:          MinAge,
		Country:      "N/A",
		Role:         RoleAdmin,
		IsVerified:   true,
	}

	if err := admin.Validate(); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("admin account created", "email", email)
	return nil
}
