// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicateName        = errors.New("name already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrAlreadyVerified      = errors.New("account already verified")
	ErrCodeInvalidOrExpired = errors.New("code invalid or expired")
	ErrWeakPassword         = errors.New("password too weak")
	ErrNotificationFailed   = errors.New("notification delivery failed")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenInvalid         = errors.New("token invalid")
	ErrTokenRevoked         = errors.New("token revoked")
	ErrInvalidID            = errors.New("invalid id")
)

// AppError pairs a domain sentinel with the HTTP status and client-facing
// message it should be rendered as.
type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrValidation, message, http.StatusBadRequest, "VALIDATION_FAILED")
}

func DuplicateEmailError() *AppError {
	return NewAppError(
		ErrDuplicateEmail,
		"a client is already registered with that email",
		http.StatusBadRequest,
		"DUPLICATE_EMAIL",
	)
}

func DuplicateNameError() *AppError {
	return NewAppError(
		ErrDuplicateName,
		"that name is already in use",
		http.StatusBadRequest,
		"DUPLICATE_NAME",
	)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		resource+" not found",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func InvalidIDError(resource string) *AppError {
	return NewAppError(
		ErrInvalidID,
		"invalid "+resource+" ID",
		http.StatusBadRequest,
		"INVALID_ID",
	)
}

func InvalidCredentialsError() *AppError {
	return NewAppError(
		ErrInvalidCredentials,
		"invalid credentials",
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
	)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "insufficient permissions"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func AlreadyVerifiedError() *AppError {
	return NewAppError(
		ErrAlreadyVerified,
		"this account has already been verified",
		http.StatusBadRequest,
		"ALREADY_VERIFIED",
	)
}

func CodeInvalidOrExpiredError() *AppError {
	return NewAppError(
		ErrCodeInvalidOrExpired,
		"verification code is invalid or has expired",
		http.StatusBadRequest,
		"CODE_INVALID_OR_EXPIRED",
	)
}

func WeakPasswordError() *AppError {
	return NewAppError(
		ErrWeakPassword,
		"password must be at least 8 characters",
		http.StatusBadRequest,
		"WEAK_PASSWORD",
	)
}

func NotificationFailedError() *AppError {
	return NewAppError(
		ErrNotificationFailed,
		"could not deliver the email",
		http.StatusInternalServerError,
		"NOTIFICATION_FAILED",
	)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrTokenExpired,
		"session expired, please log in again",
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"invalid or malformed token",
		http.StatusUnauthorized,
		"TOKEN_INVALID",
	)
}

func TokenRevokedError() *AppError {
	return NewAppError(
		ErrTokenRevoked,
		"session has been revoked",
		http.StatusUnauthorized,
		"TOKEN_REVOKED",
	)
}

// FormatValidationError flattens a validator.ValidationErrors into a single
// client-readable message.
func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}

	return strings.Join(msgs, ", ")
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// FieldError is a structured per-field failure produced by entity-level
// validation, run before any store mutation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, f := range fe {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

func (fe FieldErrors) Unwrap() error {
	return ErrValidation
}
