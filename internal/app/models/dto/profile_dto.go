package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/arjn/careermatch/internal/app/models"
)

// StudentProfileResponse is the API shape of a student profile
type StudentProfileResponse struct {
	UserID     uuid.UUID `json:"userId"`
	Name       string    `json:"name"`
	University string    `json:"university"`
	College    string    `json:"college"`
	Degree     string    `json:"degree"`
	Branch     string    `json:"branch"`
	Year       int       `json:"year"`
	CGPA       float64   `json:"cgpa"`
	Credits    int       `json:"credits"`
	Bio        *string   `json:"bio,omitempty"`
	Resume     *string   `json:"resume,omitempty"`
	Consent    bool      `json:"consent"`
	Twitter    *string   `json:"twitter,omitempty"`
	GitHub     *string   `json:"github,omitempty"`
	LinkedIn   *string   `json:"linkedin,omitempty"`
	Kaggle     *string   `json:"kaggle,omitempty"`
	Skills     []string  `json:"skills"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewStudentProfileResponse maps a student profile model to its API shape
func NewStudentProfileResponse(p *models.StudentProfile) *StudentProfileResponse {
	return &StudentProfileResponse{
		UserID:     p.UserID,
		Name:       p.Name,
		University: p.University,
		College:    p.College,
		Degree:     p.Degree,
		Branch:     p.Branch,
		Year:       p.Year,
		CGPA:       p.CGPA,
		Credits:    p.Credits,
		Bio:        p.Bio,
		Resume:     p.Resume,
		Consent:    p.Consent,
		Twitter:    p.Twitter,
		GitHub:     p.GitHub,
		LinkedIn:   p.LinkedIn,
		Kaggle:     p.Kaggle,
		Skills:     p.Skills,
		UpdatedAt:  p.UpdatedAt,
	}
}

// HostProfileResponse is the API shape of a host profile
type HostProfileResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	LogoURL   *string   `json:"logoUrl,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	Verified  bool      `json:"verified"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewHostProfileResponse maps a host profile model to its API shape
func NewHostProfileResponse(p *models.HostProfile) *HostProfileResponse {
	return &HostProfileResponse{
		UserID:    p.UserID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		LogoURL:   p.LogoURL,
		Bio:       p.Bio,
		Verified:  p.Verified,
		UpdatedAt: p.UpdatedAt,
	}
}
