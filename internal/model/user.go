package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// User roles. Admin accounts are provisioned administratively and cannot be
// self-registered.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// User represents a user record in the database. PasswordHash is never
// serialized and is only populated by the repository methods that select it
// explicitly. ResetTokenHash/ResetTokenExpire hold the active password-reset
// token, if any.
type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	PasswordHash     string     `json:"-"`
	ResetTokenHash   string     `json:"-"`
	ResetTokenExpire *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the registration fields and reports every failing field.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&r.Role, validation.In(RoleUser, RolePublisher)),
	)
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateDetailsRequest whitelists the fields a user may change about
// themselves. Anything else in the body is ignored. Both fields are
// optional; an absent field keeps its current value.
type UpdateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks the format of the supplied detail fields. Blank fields
// pass; the service keeps the current values for them.
func (r UpdateDetailsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 50)),
		validation.Field(&r.Email, is.Email),
	)
}

// UpdatePasswordRequest carries the current and replacement passwords.
type UpdatePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// Validate checks the password-change fields.
func (r UpdatePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 72)),
	)
}

// ForgotPasswordRequest carries the email a reset is requested for.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the replacement password; the reset token
// itself travels in the URL.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks the replacement password.
func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

// TokenResponse is the body returned whenever a fresh session token is
// issued (register, login, reset password, update password).
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
