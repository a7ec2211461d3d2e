// AngelaMos | 2026
// repository.go

package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/casinoremedial/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByEmail(ctx context.Context, email string) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, c *Client) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	SetVerificationCode(ctx context.Context, email, code string, expires time.Time) error
	ConsumeVerificationCode(ctx context.Context, email, code string) error
	SetRecoveryCode(ctx context.Context, email, code string, expires time.Time) error
	CheckRecoveryCode(ctx context.Context, email, code string) error
	ResetPasswordWithCode(ctx context.Context, email, code, passwordHash string) error
	SetVerified(ctx context.Context, id string, verified bool) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const uniqueViolation = "23505"

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *repository) Create(ctx context.Context, c *Client) error {
	query := `
		INSERT INTO clients (
			full_name, email, password_hash, age, country, role,
			is_verified, verification_code, verification_expires
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.FullName,
		c.Email,
		c.PasswordHash,
		c.Age,
		c.Country,
		c.Role,
		c.IsVerified,
		c.VerificationCode,
		c.VerificationExpires,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return core.ErrDuplicateEmail
		}
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Client, error) {
	var c Client
	query := `SELECT * FROM clients WHERE id = $1`

	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}

	return &c, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Client, error) {
	var c Client
	query := `SELECT * FROM clients WHERE email = $1`

	if err := r.db.GetContext(ctx, &c, query, NormalizeEmail(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get client by email: %w", err)
	}

	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Client, error) {
	clients := []Client{}
	query := `SELECT * FROM clients ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	return clients, nil
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	query := `
		UPDATE clients
		SET full_name = $1, email = $2, age = $3, country = $4,
		    role = $5, is_verified = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.FullName,
		c.Email,
		c.Age,
		c.Country,
		c.Role,
		c.IsVerified,
		c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		if isDuplicate(err) {
			return core.ErrDuplicateEmail
		}
		return fmt.Errorf("update client: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE clients
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return requireRow(result, core.ErrNotFound)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	return requireRow(result, core.ErrNotFound)
}

func (r *repository) SetVerificationCode(
	ctx context.Context,
	email, code string,
	expires time.Time,
) error {
	query := `
		UPDATE clients
		SET verification_code = $1, verification_expires = $2, updated_at = NOW()
		WHERE email = $3`

	result, err := r.db.ExecContext(ctx, query, code, expires, NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("set verification code: %w", err)
	}

	return requireRow(result, core.ErrNotFound)
}

// ConsumeVerificationCode matches and clears the code in one statement, so a
// code can only ever be redeemed once.
func (r *repository) ConsumeVerificationCode(ctx context.Context, email, code string) error {
	query := `
		UPDATE clients
		SET is_verified = TRUE,
		    verification_code = NULL,
		    verification_expires = NULL,
		    updated_at = NOW()
		WHERE email = $1
		  AND verification_code = $2
		  AND verification_expires > NOW()`

	result, err := r.db.ExecContext(ctx, query, NormalizeEmail(email), code)
	if err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}

	return requireRow(result, core.ErrCodeInvalidOrExpired)
}

func (r *repository) SetRecoveryCode(
	ctx context.Context,
	email, code string,
	expires time.Time,
) error {
	query := `
		UPDATE clients
		SET reset_password_code = $1, reset_password_expires = $2, updated_at = NOW()
		WHERE email = $3`

	result, err := r.db.ExecContext(ctx, query, code, expires, NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("set recovery code: %w", err)
	}

	return requireRow(result, core.ErrNotFound)
}

// CheckRecoveryCode verifies a code without consuming it, for the
// pre-reset confirmation step.
func (r *repository) CheckRecoveryCode(ctx context.Context, email, code string) error {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM clients
			WHERE email = $1
			  AND reset_password_code = $2
			  AND reset_password_expires > NOW()
		)`

	err := r.db.GetContext(ctx, &exists, query, NormalizeEmail(email), code)
	if err != nil {
		return fmt.Errorf("check recovery code: %w", err)
	}

	if !exists {
		return core.ErrCodeInvalidOrExpired
	}
	return nil
}

// ResetPasswordWithCode re-validates the code and swaps the hash in one
// statement; an expired or mismatched code leaves the row untouched.
func (r *repository) ResetPasswordWithCode(
	ctx context.Context,
	email, code, passwordHash string,
) error {
	query := `
		UPDATE clients
		SET password_hash = $1,
		    reset_password_code = NULL,
		    reset_password_expires = NULL,
		    updated_at = NOW()
		WHERE email = $2
		  AND reset_password_code = $3
		  AND reset_password_expires > NOW()`

	result, err := r.db.ExecContext(ctx, query, passwordHash, NormalizeEmail(email), code)
	if err != nil {
		return fmt.Errorf("reset password with code: %w", err)
	}

	return requireRow(result, core.ErrCodeInvalidOrExpired)
}

func (r *repository) SetVerified(ctx context.Context, id string, verified bool) error {
	query := `
		UPDATE clients
		SET is_verified = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, verified, id)
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}

	return requireRow(result, core.ErrNotFound)
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM clients`); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return count, nil
}

func requireRow(result sql.Result, sentinel error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel
	}
	return nil
}
