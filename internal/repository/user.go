package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/campdir/campdir-api/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence. Password hashes are excluded from
// reads unless a WithHash variant is called explicitly.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, role, created_at, updated_at`

// Create inserts a new user. The caller assigns the ID and password hash;
// email uniqueness is enforced by the store and surfaces as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, role, password_hash) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Role, user.PasswordHash)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves a user by ID, without auth fields.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email, without auth fields.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByEmailWithHash retrieves a user by email including the password hash.
// Used only by login.
func (r *UserRepository) GetByEmailWithHash(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + `, password_hash FROM users WHERE email = ?`
	return r.scanUserWithHash(r.db.QueryRowContext(ctx, query, email))
}

// GetByIDWithHash retrieves a user by ID including the password hash. Used
// only by the update-password flow.
func (r *UserRepository) GetByIDWithHash(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + `, password_hash FROM users WHERE id = ?`
	return r.scanUserWithHash(r.db.QueryRowContext(ctx, query, id))
}

// GetByResetToken retrieves the user whose stored reset-token digest matches
// and whose token expiry is strictly after now. An expired token never
// matches, identically to a wrong one.
func (r *UserRepository) GetByResetToken(ctx context.Context, digest string, now time.Time) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token_hash = ? AND reset_token_expire > ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, digest, now))
}

// UpdateDetails updates the name and email of a user and returns the updated
// record.
func (r *UserRepository) UpdateDetails(ctx context.Context, id, name, email string) (*model.User, error) {
	query := `UPDATE users SET name = ?, email = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, name, email, id); err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdatePassword replaces the stored password hash and clears any active
// reset token in the same write.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, reset_token_hash = NULL, reset_token_expire = NULL WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetResetToken stores a reset-token digest and its absolute expiry,
// replacing any previously issued token for the user.
func (r *UserRepository) SetResetToken(ctx context.Context, id, digest string, expire time.Time) error {
	query := `UPDATE users SET reset_token_hash = ?, reset_token_expire = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, digest, expire, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ClearResetToken empties both reset-token fields.
func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	query := `UPDATE users SET reset_token_hash = NULL, reset_token_expire = NULL WHERE id = ?`

	// No affected-rows check: clearing fields that are already NULL
	// reports zero rows on MySQL and is not an error here.
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) scanUserWithHash(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
