package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campdir/campdir-api/internal/model"
)

var (
	ErrBootcampNotFound      = errors.New("bootcamp not found")
	ErrDuplicateBootcampName = errors.New("bootcamp name already exists")
)

// BootcampRepository handles bootcamp persistence.
type BootcampRepository struct {
	db *sql.DB
}

// NewBootcampRepository creates a new BootcampRepository.
func NewBootcampRepository(db *sql.DB) *BootcampRepository {
	return &BootcampRepository{db: db}
}

const bootcampColumns = `id, name, description, website, phone, email, address, average_rating, user_id, created_at`

// Create inserts a new bootcamp. Name uniqueness is enforced by the store.
func (r *BootcampRepository) Create(ctx context.Context, b *model.Bootcamp) error {
	query := `INSERT INTO bootcamps (id, name, description, website, phone, email, address, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.Description, b.Website, b.Phone, b.Email, b.Address, b.UserID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateBootcampName
		}
		return err
	}
	return nil
}

// GetByID retrieves a bootcamp by ID.
func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*model.Bootcamp, error) {
	query := `SELECT ` + bootcampColumns + ` FROM bootcamps WHERE id = ?`

	b, err := scanBootcamp(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List retrieves all bootcamps, newest first.
func (r *BootcampRepository) List(ctx context.Context) ([]model.Bootcamp, error) {
	query := `SELECT ` + bootcampColumns + ` FROM bootcamps ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bootcamps []model.Bootcamp
	for rows.Next() {
		var b model.Bootcamp
		var rating sql.NullFloat64
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Website, &b.Phone,
			&b.Email, &b.Address, &rating, &b.UserID, &b.CreatedAt); err != nil {
			return nil, err
		}
		if rating.Valid {
			b.AverageRating = &rating.Float64
		}
		bootcamps = append(bootcamps, b)
	}

	return bootcamps, rows.Err()
}

// Update replaces the writable fields of a bootcamp.
func (r *BootcampRepository) Update(ctx context.Context, b *model.Bootcamp) error {
	query := `UPDATE bootcamps SET name = ?, description = ?, website = ?, phone = ?, email = ?, address = ?
		WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		b.Name, b.Description, b.Website, b.Phone, b.Email, b.Address, b.ID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateBootcampName
		}
		return err
	}
	return nil
}

// Delete removes a bootcamp. Courses and reviews cascade via foreign keys.
func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bootcamps WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBootcampNotFound
	}
	return nil
}

// SetAverageRating persists a recomputed average rating. A nil rating clears
// the column (no reviews remain).
func (r *BootcampRepository) SetAverageRating(ctx context.Context, id string, rating *float64) error {
	query := `UPDATE bootcamps SET average_rating = ? WHERE id = ?`

	var value any
	if rating != nil {
		value = *rating
	}
	_, err := r.db.ExecContext(ctx, query, value, id)
	return err
}

func scanBootcamp(row *sql.Row) (*model.Bootcamp, error) {
	b := &model.Bootcamp{}
	var rating sql.NullFloat64
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Website, &b.Phone,
		&b.Email, &b.Address, &rating, &b.UserID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBootcampNotFound
		}
		return nil, err
	}
	if rating.Valid {
		b.AverageRating = &rating.Float64
	}
	return b, nil
}
