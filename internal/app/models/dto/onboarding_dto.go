package dto

import "github.com/arjn/careermatch/internal/app/models"

// OnboardingState names a position in the profile-completion flow
type OnboardingState string

const (
	OnboardingPendingVerification OnboardingState = "pending_verification"
	OnboardingPendingProfile      OnboardingState = "pending_profile"
	OnboardingComplete            OnboardingState = "complete"
)

// OnboardingStatusResponse reports where the account stands. Role and
// Redirect are derived from which profile table holds a row, not from the
// stored role column.
type OnboardingStatusResponse struct {
	State    OnboardingState `json:"state"`
	Role     models.Role     `json:"role,omitempty"`
	Redirect string          `json:"redirect"`
}

// StudentProfileRequest carries the student onboarding fields
type StudentProfileRequest struct {
	Name       string   `json:"name" binding:"required"`
	University string   `json:"university" binding:"required"`
	College    string   `json:"college" binding:"required"`
	Degree     string   `json:"degree" binding:"required"`
	Branch     string   `json:"branch" binding:"required"`
	// Year and CGPA carry no `required` tag: validator treats numeric zero
	// values as missing, and a CGPA of 0 is a legal value. Range checks
	// happen in the service.
	Year       int      `json:"year"`
	CGPA       float64  `json:"cgpa"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
	Twitter    string   `json:"twitter"`
	GitHub     string   `json:"github"`
	LinkedIn   string   `json:"linkedin"`
	Kaggle     string   `json:"kaggle"`
}

// HostProfileRequest carries the organization onboarding fields
type HostProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Bio     string `json:"bio"`
}

// CompleteProfileResponse reports a finished onboarding step
type CompleteProfileResponse struct {
	Role     models.Role `json:"role"`
	Redirect string      `json:"redirect"`
}

// UpdateStudentProfileRequest carries post-onboarding edits
type UpdateStudentProfileRequest struct {
	Name       *string  `json:"name"`
	University *string  `json:"university"`
	College    *string  `json:"college"`
	Degree     *string  `json:"degree"`
	Branch     *string  `json:"branch"`
	Year       *int     `json:"year"`
	CGPA       *float64 `json:"cgpa"`
	Bio        *string  `json:"bio"`
	Skills     []string `json:"skills"`
	Twitter    *string  `json:"twitter"`
	GitHub     *string  `json:"github"`
	LinkedIn   *string  `json:"linkedin"`
	Kaggle     *string  `json:"kaggle"`
}

// UpdateHostProfileRequest carries post-onboarding edits; Verified is
// deliberately absent, only admins flip it.
type UpdateHostProfileRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Bio     *string `json:"bio"`
}
