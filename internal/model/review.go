package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Review represents a user's review of a bootcamp. A user may review a given
// bootcamp at most once (unique index on bootcamp+user).
type Review struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	BootcampID string    `json:"bootcamp"`
	UserID     string    `json:"user"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewRequest carries the writable review fields.
type ReviewRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// Validate checks the review fields and reports every failing field.
func (r ReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Text, validation.Required),
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(10)),
	)
}
