package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Bootcamp represents a bootcamp listing. AverageRating is derived from the
// bootcamp's reviews and is nil until the first review lands.
type Bootcamp struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	UserID        string    `json:"user"`
	CreatedAt     time.Time `json:"created_at"`
}

// BootcampRequest carries the writable bootcamp fields for create and update.
type BootcampRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// Validate checks the bootcamp fields and reports every failing field.
func (r BootcampRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Website, is.URL),
		validation.Field(&r.Phone, validation.Length(0, 20)),
		validation.Field(&r.Email, is.Email),
	)
}
