package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentProfile defines the student model based on the 'student_profiles' table.
// Its existence is the completion signal for student onboarding.
type StudentProfile struct {
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	University   string    `json:"university" db:"university"`
	College      string    `json:"college" db:"college"`
	Degree       string    `json:"degree" db:"degree"`
	Branch       string    `json:"branch" db:"branch"`
	Year         int       `json:"year" db:"year"`   // 1..6
	CGPA         float64   `json:"cgpa" db:"cgpa"`   // 0..10
	Credits      int       `json:"credits" db:"credits"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	Resume       *string   `json:"resume,omitempty" db:"resume"`
	ResumeParsed bool      `json:"resumeParsed" db:"resume_parsed"`
	Consent      bool      `json:"consent" db:"consent"`
	Twitter      *string   `json:"twitter,omitempty" db:"twitter"`
	GitHub       *string   `json:"github,omitempty" db:"github"`
	LinkedIn     *string   `json:"linkedin,omitempty" db:"linkedin"`
	Kaggle       *string   `json:"kaggle,omitempty" db:"kaggle"`
	Skills       []string  `json:"skills" db:"skills"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
