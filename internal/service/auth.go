package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campdir/campdir-api/internal/apperr"
	"github.com/campdir/campdir-api/internal/crypto"
	"github.com/campdir/campdir-api/internal/mailer"
	"github.com/campdir/campdir-api/internal/model"
	"github.com/campdir/campdir-api/internal/repository"
	"github.com/google/uuid"
)

// resetTokenTTL is the lifetime of an issued password-reset token.
const resetTokenTTL = 10 * time.Minute

// UserStore is the credential store the auth service operates on.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByEmailWithHash(ctx context.Context, email string) (*model.User, error)
	GetByIDWithHash(ctx context.Context, id string) (*model.User, error)
	GetByResetToken(ctx context.Context, digest string, now time.Time) (*model.User, error)
	UpdateDetails(ctx context.Context, id, name, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, digest string, expire time.Time) error
	ClearResetToken(ctx context.Context, id string) error
}

// AuthService orchestrates registration, login and the password lifecycle.
type AuthService struct {
	users     UserStore
	mailer    mailer.Mailer
	jwtSecret string
	jwtExpiry time.Duration
	publicURL string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, m mailer.Mailer, jwtSecret string, jwtExpiry time.Duration, publicURL string) *AuthService {
	return &AuthService{
		users:     users,
		mailer:    m,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		publicURL: publicURL,
	}
}

// Register creates a new user account and returns a session token. Duplicate
// emails are not pre-checked; the store's uniqueness constraint surfaces as a
// duplicate error.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperr.New(apperr.KindValidation, err.Error())
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return "", apperr.Internal(err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", apperr.New(apperr.KindDuplicate, "Duplicate field value entered email")
		}
		return "", apperr.Internal(err)
	}

	return s.issueToken(user.ID)
}

// Login verifies credentials and returns a session token. A missing user and
// a failed password check produce the same error so nothing leaks about
// which one failed.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", apperr.New(apperr.KindValidation, "Please provide email and password")
	}

	user, err := s.users.GetByEmailWithHash(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.New(apperr.KindAuth, "Invalid credentials")
		}
		return "", apperr.Internal(err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if !match {
		return "", apperr.New(apperr.KindAuth, "Invalid credentials")
	}

	return s.issueToken(user.ID)
}

// GetMe returns the authenticated user's record.
func (s *AuthService) GetMe(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "No user found with id")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// ForgotPassword issues a reset token for the account behind email and mails
// the cleartext token. If the email cannot be delivered the stored token
// fields are rolled back so the record never holds a token nobody received.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.New(apperr.KindNotFound, "No account exists for this email")
		}
		return apperr.Internal(err)
	}

	cleartext, digest, err := crypto.NewResetToken()
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.users.SetResetToken(ctx, user.ID, digest, time.Now().Add(resetTokenTTL)); err != nil {
		return apperr.Internal(err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/auth/resetpassword/%s", s.publicURL, cleartext)
	body := fmt.Sprintf("You are receiving this email because you (or someone else) has "+
		"requested the reset of a password. Please make a POST request to:\n\n%s", resetURL)

	if err := s.mailer.Send(ctx, user.Email, "Password Reset Token", body); err != nil {
		slog.Error("reset email dispatch failed", "error", err)
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			slog.Error("reset token rollback failed", "error", clearErr)
		}
		return apperr.Wrap(err, apperr.KindServer, "Email could not be sent")
	}

	return nil
}

// ResetPassword consumes a reset token. The stored digest must match and the
// expiry must be strictly in the future; an expired token fails identically
// to a wrong one. On success the password is replaced, the token fields are
// cleared and a fresh session token is issued.
func (s *AuthService) ResetPassword(ctx context.Context, cleartext string, req model.ResetPasswordRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperr.New(apperr.KindValidation, err.Error())
	}

	digest := crypto.HashResetToken(cleartext)
	user, err := s.users.GetByResetToken(ctx, digest, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.New(apperr.KindInvalidToken, "Invalid token")
		}
		return "", apperr.Internal(err)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", apperr.Internal(err)
	}

	return s.issueToken(user.ID)
}

// UpdateDetails changes the caller's name and email, nothing else. Fields
// absent from the request keep their current values.
func (s *AuthService) UpdateDetails(ctx context.Context, userID string, req model.UpdateDetailsRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}

	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "No user found with id")
		}
		return nil, apperr.Internal(err)
	}

	name := req.Name
	if name == "" {
		name = current.Name
	}
	email := req.Email
	if email == "" {
		email = current.Email
	}

	user, err := s.users.UpdateDetails(ctx, userID, name, email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperr.New(apperr.KindDuplicate, "Duplicate field value entered email")
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, apperr.New(apperr.KindNotFound, "No user found with id")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// UpdatePassword verifies the caller's current password before storing the
// replacement, then re-issues a session token as on a fresh login.
func (s *AuthService) UpdatePassword(ctx context.Context, userID string, req model.UpdatePasswordRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperr.New(apperr.KindValidation, err.Error())
	}

	user, err := s.users.GetByIDWithHash(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.New(apperr.KindNotFound, "No user found with id")
		}
		return "", apperr.Internal(err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if !match {
		return "", apperr.New(apperr.KindAuth, "Password is incorrect")
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return "", apperr.Internal(err)
	}

	return s.issueToken(userID)
}

func (s *AuthService) issueToken(userID string) (string, error) {
	token, err := crypto.GenerateToken(userID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}
