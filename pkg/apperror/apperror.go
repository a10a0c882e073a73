package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Stable error codes exposed to API clients.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeTokenExpired   = "TOKEN_EXPIRED"
	CodeTokenInvalid   = "INVALID_TOKEN"
	CodeForbidden      = "INSUFFICIENT_PERMISSIONS"
	CodeNotFound       = "NOT_FOUND"
	CodeDuplicate      = "DUPLICATE_ENTRY"
	CodeForeignKey     = "FOREIGN_KEY_CONSTRAINT"
	CodeDatabase       = "DATABASE_ERROR"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
	CodeRouteNotFound  = "ROUTE_NOT_FOUND"
)

// FieldError carries per-field validation feedback.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the single failure type business logic returns. The delivery
// layer never inspects it; Normalize performs the one translation to a
// transport status.
type Error struct {
	Status  int
	Code    string
	Message string
	Details []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func NewValidation(message string, details ...FieldError) *Error {
	if message == "" {
		message = "One or more validation errors occurred."
	}
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: message, Details: details}
}

func NewAuthentication(message string) *Error {
	if message == "" {
		message = "Authentication failed"
	}
	return &Error{Status: http.StatusUnauthorized, Code: CodeAuthentication, Message: message}
}

func NewTokenExpired() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeTokenExpired,
		Message: "Your session has expired. Please log in again.",
	}
}

func NewTokenInvalid() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeTokenInvalid,
		Message: "The provided authentication token is invalid.",
	}
}

func NewForbidden(message string) *Error {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func NewNotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func NewDuplicate(message string) *Error {
	if message == "" {
		message = "The provided value is already in use."
	}
	return &Error{Status: http.StatusConflict, Code: CodeDuplicate, Message: message}
}

// Postgres error codes GORM's TranslateError can miss on some paths.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Normalize maps any failure to exactly one taxonomy entry. Typed *Error
// values pass through untouched; everything else (binder failures, GORM and
// driver errors, JWT sentinels) is classified here and nowhere else.
func Normalize(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]FieldError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, FieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		return NewValidation("", details...)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) {
		return NewValidation("The request body is not valid JSON.")
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewNotFound("The requested resource could not be found.")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewDuplicate("")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return foreignKeyError(err)
	case errors.Is(err, jwt.ErrTokenExpired):
		e := NewTokenExpired()
		e.cause = err
		return e
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return NewDuplicate("")
		case pgForeignKeyViolation:
			return foreignKeyError(err)
		}
		return &Error{
			Status:  http.StatusInternalServerError,
			Code:    CodeDatabase,
			Message: "A database error occurred.",
			cause:   err,
		}
	}

	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "An unexpected error occurred on our end. Please try again later.",
		cause:   err,
	}
}

func foreignKeyError(cause error) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeForeignKey,
		Message: "The operation failed due to a data relationship constraint.",
		cause:   cause,
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("Failed validation on '%s'", fe.Tag())
	}
}
