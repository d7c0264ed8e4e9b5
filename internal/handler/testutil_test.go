package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"time"

	"github.com/campdir/campdir-api/internal/model"
	"github.com/campdir/campdir-api/internal/repository"
	"github.com/campdir/campdir-api/internal/service"
)

// memDB backs the handler tests with an in-memory implementation of every
// store interface the services consume.
type memDB struct {
	users     map[string]*model.User
	bootcamps map[string]*model.Bootcamp
	courses   map[string]*model.Course
	reviews   map[string]*model.Review
}

func newMemDB() *memDB {
	return &memDB{
		users:     make(map[string]*model.User),
		bootcamps: make(map[string]*model.Bootcamp),
		courses:   make(map[string]*model.Course),
		reviews:   make(map[string]*model.Review),
	}
}

// --- service.UserStore / middleware.UserLoader ---

func (db *memDB) Create(_ context.Context, user *model.User) error {
	for _, u := range db.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	db.users[user.ID] = &cp
	return nil
}

func (db *memDB) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (db *memDB) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			cp.PasswordHash = ""
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (db *memDB) GetByEmailWithHash(_ context.Context, email string) (*model.User, error) {
	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (db *memDB) GetByIDWithHash(_ context.Context, id string) (*model.User, error) {
	u, ok := db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (db *memDB) GetByResetToken(_ context.Context, digest string, now time.Time) (*model.User, error) {
	for _, u := range db.users {
		if u.ResetTokenHash == digest && u.ResetTokenExpire != nil && u.ResetTokenExpire.After(now) {
			cp := *u
			cp.PasswordHash = ""
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (db *memDB) UpdateDetails(_ context.Context, id, name, email string) (*model.User, error) {
	u, ok := db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	for otherID, other := range db.users {
		if otherID != id && other.Email == email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	u.Name = name
	u.Email = email
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (db *memDB) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := db.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = ""
	u.ResetTokenExpire = nil
	return nil
}

func (db *memDB) SetResetToken(_ context.Context, id, digest string, expire time.Time) error {
	u, ok := db.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.ResetTokenHash = digest
	u.ResetTokenExpire = &expire
	return nil
}

func (db *memDB) ClearResetToken(_ context.Context, id string) error {
	u, ok := db.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.ResetTokenHash = ""
	u.ResetTokenExpire = nil
	return nil
}

// --- service.BootcampStore + service.RatingSink ---

type memBootcamps struct{ db *memDB }

func (s memBootcamps) Create(_ context.Context, b *model.Bootcamp) error {
	for _, other := range s.db.bootcamps {
		if other.Name == b.Name {
			return repository.ErrDuplicateBootcampName
		}
	}
	cp := *b
	cp.CreatedAt = time.Now()
	s.db.bootcamps[b.ID] = &cp
	return nil
}

func (s memBootcamps) GetByID(_ context.Context, id string) (*model.Bootcamp, error) {
	b, ok := s.db.bootcamps[id]
	if !ok {
		return nil, repository.ErrBootcampNotFound
	}
	cp := *b
	return &cp, nil
}

func (s memBootcamps) List(_ context.Context) ([]model.Bootcamp, error) {
	var out []model.Bootcamp
	for _, b := range s.db.bootcamps {
		out = append(out, *b)
	}
	return out, nil
}

func (s memBootcamps) Update(_ context.Context, b *model.Bootcamp) error {
	if _, ok := s.db.bootcamps[b.ID]; !ok {
		return repository.ErrBootcampNotFound
	}
	cp := *b
	s.db.bootcamps[b.ID] = &cp
	return nil
}

func (s memBootcamps) Delete(_ context.Context, id string) error {
	if _, ok := s.db.bootcamps[id]; !ok {
		return repository.ErrBootcampNotFound
	}
	delete(s.db.bootcamps, id)
	return nil
}

func (s memBootcamps) SetAverageRating(_ context.Context, id string, rating *float64) error {
	b, ok := s.db.bootcamps[id]
	if !ok {
		return repository.ErrBootcampNotFound
	}
	b.AverageRating = rating
	return nil
}

// --- service.CourseStore ---

type memCourses struct{ db *memDB }

func (s memCourses) Create(_ context.Context, c *model.Course) error {
	cp := *c
	cp.CreatedAt = time.Now()
	s.db.courses[c.ID] = &cp
	return nil
}

func (s memCourses) GetByID(_ context.Context, id string) (*model.Course, error) {
	c, ok := s.db.courses[id]
	if !ok {
		return nil, repository.ErrCourseNotFound
	}
	cp := *c
	s.populate(&cp)
	return &cp, nil
}

func (s memCourses) List(_ context.Context, bootcampID string) ([]model.Course, error) {
	var out []model.Course
	for _, c := range s.db.courses {
		if bootcampID == "" || c.Bootcamp.ID == bootcampID {
			cp := *c
			s.populate(&cp)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (s memCourses) populate(c *model.Course) {
	if b, ok := s.db.bootcamps[c.Bootcamp.ID]; ok {
		c.Bootcamp = model.BootcampSummary{ID: b.ID, Name: b.Name, Description: b.Description}
	}
}

// --- service.ReviewStore ---

type memReviews struct{ db *memDB }

func (s memReviews) Create(_ context.Context, rev *model.Review) error {
	for _, r := range s.db.reviews {
		if r.BootcampID == rev.BootcampID && r.UserID == rev.UserID {
			return repository.ErrDuplicateReview
		}
	}
	cp := *rev
	cp.CreatedAt = time.Now()
	s.db.reviews[rev.ID] = &cp
	return nil
}

func (s memReviews) GetByID(_ context.Context, id string) (*model.Review, error) {
	r, ok := s.db.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (s memReviews) List(_ context.Context, bootcampID string) ([]model.Review, error) {
	var out []model.Review
	for _, r := range s.db.reviews {
		if bootcampID == "" || r.BootcampID == bootcampID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s memReviews) Update(_ context.Context, rev *model.Review) error {
	if _, ok := s.db.reviews[rev.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	cp := *rev
	s.db.reviews[rev.ID] = &cp
	return nil
}

func (s memReviews) Delete(_ context.Context, id string) error {
	if _, ok := s.db.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(s.db.reviews, id)
	return nil
}

func (s memReviews) AverageRating(_ context.Context, bootcampID string) (*float64, error) {
	var sum, n float64
	for _, r := range s.db.reviews {
		if r.BootcampID == bootcampID {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / n
	return &avg, nil
}

// --- mail ---

type fakeMailer struct {
	bodies []string
	to     []string
	fail   error
}

func (m *fakeMailer) Send(_ context.Context, to, _, body string) error {
	if m.fail != nil {
		return m.fail
	}
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, body)
	return nil
}

var errSMTPDown = errors.New("smtp unreachable")

// newTestServer wires the full route tree against in-memory stores.
func newTestServer() (*httptest.Server, *memDB, *fakeMailer) {
	db := newMemDB()
	mail := &fakeMailer{}

	const secret = "test-secret"
	authService := service.NewAuthService(db, mail, secret, time.Hour, "http://localhost:5000")
	bootcampService := service.NewBootcampService(memBootcamps{db})
	courseService := service.NewCourseService(memCourses{db}, memBootcamps{db})
	reviewService := service.NewReviewService(memReviews{db}, memBootcamps{db}, memBootcamps{db})

	router := Routes(Deps{
		Auth:      NewAuthHandler(authService, 24*time.Hour, false),
		Bootcamps: NewBootcampHandler(bootcampService),
		Courses:   NewCourseHandler(courseService),
		Reviews:   NewReviewHandler(reviewService),
		JWTSecret: secret,
		Users:     db,
	})

	return httptest.NewServer(router), db, mail
}
