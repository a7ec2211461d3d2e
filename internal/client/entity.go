// AngelaMos | 2026
// entity.go

package client

import (
	"regexp"
	"strings"
	"time"

	"github.com/casinoremedial/backend/internal/core"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

const (
	MinAge = 18
	MaxAge = 120
)

var emailPattern = regexp.MustCompile(
	`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`,
)

// Client is a registered account. Email is stored lower-cased; the one-time
// code pairs are nil unless a verification or recovery flow is in flight.
type Client struct {
	ID                   string     `db:"id" json:"id"`
	FullName             string     `db:"full_name" json:"fullName"`
	Email                string     `db:"email" json:"email"`
	PasswordHash         string     `db:"password_hash" json:"-"`
	Age                  int        `db:"age" json:"age"`
	Country              string     `db:"country" json:"country"`
	Role                 string     `db:"role" json:"role"`
	IsVerified           bool       `db:"is_verified" json:"isVerified"`
	VerificationCode     *string    `db:"verification_code" json:"-"`
	VerificationExpires  *time.Time `db:"verification_expires" json:"-"`
	ResetPasswordCode    *string    `db:"reset_password_code" json:"-"`
	ResetPasswordExpires *time.Time `db:"reset_password_expires" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updatedAt"`
}

// NormalizeEmail lower-cases and trims an address so storage and lookup
// always agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the entity invariants before any store mutation.
func (c *Client) Validate() error {
	var errs core.FieldErrors

	if strings.TrimSpace(c.FullName) == "" {
		errs = append(errs, core.FieldError{
			Field:   "fullName",
			Message: "fullName is required",
		})
	}

	if !emailPattern.MatchString(c.Email) {
		errs = append(errs, core.FieldError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if c.Age < MinAge {
		errs = append(errs, core.FieldError{
			Field:   "age",
			Message: "clients must be at least 18 years old",
		})
	} else if c.Age > MaxAge {
		errs = append(errs, core.FieldError{
			Field:   "age",
			Message: "age must be at most 120",
		})
	}

	if strings.TrimSpace(c.Country) == "" {
		errs = append(errs, core.FieldError{
			Field:   "country",
			Message: "country is required",
		})
	}

	if c.Role != RoleClient && c.Role != RoleAdmin {
		errs = append(errs, core.FieldError{
			Field:   "role",
			Message: "role must be client or admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Client) IsAdmin() bool {
	return c.Role == RoleAdmin
}
