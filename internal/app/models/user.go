package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            uuid.UUID `json:"id" db:"id" example:"6f1c3f9e-8b1a-4f7e-9f61-0a4f2d7c1b2e"` // Unique identifier for the user
	Email         string    `json:"email" db:"email" example:"john@example.com"`                // User's email address
	Username      string    `json:"username" db:"username" example:"johndoe"`                   // Unique display handle
	Password      string    `json:"-" db:"password"`                                            // User's hashed password (excluded from JSON)
	Role          Role      `json:"role" db:"role" example:"student"`                           // User's role (student, host or admin)
	AvatarURL     *string   `json:"avatarUrl,omitempty" db:"avatar_url"`                        // URL of the user's avatar (nullable)
	EmailVerified bool      `json:"emailVerified" db:"email_verified"`                          // Whether the email address has been verified
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
