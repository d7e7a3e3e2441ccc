package errors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bookdrive/internal/auth"
)

var (
	// ErrValidation is returned when input fails validation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUserAlreadyExists is returned when email or uid is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrProtectedReference is returned when deleting a row still referenced by a sponsorship.
	ErrProtectedReference = errors.New("record is referenced by a sponsorship")
	// ErrSuperuserRole is returned when a superuser is created with a role other than Admin.
	ErrSuperuserRole = errors.New("superuser must have role of Admin")
	// ErrInvalidRole is returned for role values outside Admin/Manager/Employee.
	ErrInvalidRole = errors.New("invalid role")
)

// ValidationError describes a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a new field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Kind groups errors into the categories callers react to.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindProtected
	KindPrivilege
	KindCredentials
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindProtected:
		return "PROTECTED"
	case KindPrivilege:
		return "PRIVILEGE"
	case KindCredentials:
		return "INVALID_CREDENTIALS"
	default:
		return "INTERNAL_ERROR"
	}
}

// Classify maps domain and store errors to a Kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidRole):
		return KindValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, ErrUserAlreadyExists), errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	case errors.Is(err, ErrProtectedReference), errors.Is(err, gorm.ErrForeignKeyViolated):
		return KindProtected
	case errors.Is(err, ErrSuperuserRole):
		return KindPrivilege
	case errors.Is(err, auth.ErrPasswordMismatch):
		return KindCredentials
	default:
		return KindInternal
	}
}

// ExitCode maps an error to a process exit status for the CLI.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch Classify(err) {
	case KindValidation:
		return 2
	case KindNotFound:
		return 3
	case KindConflict:
		return 4
	case KindProtected:
		return 5
	case KindPrivilege:
		return 6
	case KindCredentials:
		return 7
	default:
		return 1
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
