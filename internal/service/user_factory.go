package service

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"bookdrive/internal/auth"
	"bookdrive/internal/errors"
	"bookdrive/internal/model"
)

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewUserInput carries the fields accepted when creating a user.
type NewUserInput struct {
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=50"`
	LastName  string `json:"last_name" validate:"max=50"`
	// Role defaults to Employee for regular users and Admin for superusers.
	Role      *model.Role `json:"role,omitempty"`
	IsActive  *bool       `json:"is_active,omitempty"`
	CreatedBy string      `json:"created_by,omitempty"`
}

// NormalizeEmail trims surrounding whitespace and lowercases the domain part.
// The local part is kept as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// NewUser builds an unsaved user record. The password is hashed with hasher and
// never stored in plaintext.
func NewUser(in NewUserInput, hasher auth.PasswordHasher, now func() time.Time) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	role := model.RoleEmployee
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("%w: %d", errors.ErrInvalidRole, uint8(*in.Role))
		}
		role = *in.Role
	}

	hashed, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	if now == nil {
		now = time.Now
	}
	ts := now().UTC()
	email := NormalizeEmail(in.Email)

	createdBy := in.CreatedBy
	if createdBy == "" {
		createdBy = email
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	return &model.User{
		UID:          uuid.New(),
		Email:        email,
		Password:     hashed,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		DateJoined:   ts,
		IsActive:     isActive,
		CreatedDate:  ts,
		ModifiedDate: ts,
		CreatedBy:    createdBy,
		ModifiedBy:   createdBy,
	}, nil
}

// NewSuperuser builds an active Admin. Any explicit role other than Admin is rejected.
func NewSuperuser(in NewUserInput, hasher auth.PasswordHasher, now func() time.Time) (*model.User, error) {
	if in.Role == nil {
		admin := model.RoleAdmin
		in.Role = &admin
	}
	if *in.Role != model.RoleAdmin {
		return nil, errors.ErrSuperuserRole
	}
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	return NewUser(in, hasher, now)
}

// validateInput reports the first failing field, email before password.
func validateInput(in NewUserInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return errors.NewValidationError(field, fmt.Sprintf("the %s must be set", field))
	case "max":
		return errors.NewValidationError(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	default:
		return errors.NewValidationError(field, fmt.Sprintf("failed %s validation", fe.Tag()))
	}
}
