package models

import (
	"time"

	"github.com/google/uuid"
)

// HostProfile defines the organization model based on the 'host_profiles' table.
// Verified starts false and is only flipped by an administrative action.
type HostProfile struct {
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Address   *string   `json:"address,omitempty" db:"address"`
	LogoURL   *string   `json:"logoUrl,omitempty" db:"logo_url"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	Verified  bool      `json:"verified" db:"verified"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
