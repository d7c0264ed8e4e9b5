package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Skill levels a course can require.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// BootcampSummary is the embedded bootcamp view returned alongside courses.
type BootcampSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Course represents a course offered by a bootcamp. Bootcamp is populated on
// reads with a summary of the owning bootcamp.
type Course struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Weeks        int             `json:"weeks"`
	Tuition      float64         `json:"tuition"`
	MinimumSkill string          `json:"minimum_skill"`
	Bootcamp     BootcampSummary `json:"bootcamp"`
	UserID       string          `json:"user"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CourseRequest carries the writable course fields.
type CourseRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Weeks        int     `json:"weeks"`
	Tuition      float64 `json:"tuition"`
	MinimumSkill string  `json:"minimum_skill"`
}

// Validate checks the course fields and reports every failing field.
func (r CourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Weeks, validation.Required, validation.Min(1)),
		validation.Field(&r.Tuition, validation.Min(0.0)),
		validation.Field(&r.MinimumSkill, validation.Required,
			validation.In(SkillBeginner, SkillIntermediate, SkillAdvanced)),
	)
}
