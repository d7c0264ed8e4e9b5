package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campdir/campdir-api/internal/model"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseRepository handles course persistence. Reads join the owning
// bootcamp so each course carries a bootcamp summary.
type CourseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseSelect = `SELECT c.id, c.title, c.description, c.weeks, c.tuition, c.minimum_skill,
	c.user_id, c.created_at, b.id, b.name, b.description
	FROM courses c JOIN bootcamps b ON b.id = c.bootcamp_id`

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	query := `INSERT INTO courses (id, title, description, weeks, tuition, minimum_skill, bootcamp_id, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.Bootcamp.ID, c.UserID)
	return err
}

// GetByID retrieves a course with its bootcamp summary.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	row := r.db.QueryRowContext(ctx, courseSelect+` WHERE c.id = ?`, id)

	c := &model.Course{}
	err := scanCourse(row.Scan, c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

// List retrieves all courses, optionally filtered to one bootcamp.
func (r *CourseRepository) List(ctx context.Context, bootcampID string) ([]model.Course, error) {
	query := courseSelect
	args := []any{}
	if bootcampID != "" {
		query += ` WHERE c.bootcamp_id = ?`
		args = append(args, bootcampID)
	}
	query += ` ORDER BY c.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := scanCourse(rows.Scan, &c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

func scanCourse(scan func(...any) error, c *model.Course) error {
	return scan(&c.ID, &c.Title, &c.Description, &c.Weeks, &c.Tuition, &c.MinimumSkill,
		&c.UserID, &c.CreatedAt, &c.Bootcamp.ID, &c.Bootcamp.Name, &c.Bootcamp.Description)
}
