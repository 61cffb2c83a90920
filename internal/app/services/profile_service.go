package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/app/repositories"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
)

// ProfileService covers profile reads and edits after onboarding
type ProfileService struct {
	studentRepo repositories.IStudentProfileRepository
	hostRepo    repositories.IHostProfileRepository
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	studentRepo repositories.IStudentProfileRepository,
	hostRepo repositories.IHostProfileRepository,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		studentRepo: studentRepo,
		hostRepo:    hostRepo,
		logger:      logger,
	}
}

// GetStudentProfile returns the caller's student profile
func (s *ProfileService) GetStudentProfile(ctx context.Context, userID uuid.UUID) (*dto.StudentProfileResponse, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentProfileResponse(profile), nil
}

// UpdateStudentProfile applies a partial edit, re-validating ranged fields
func (s *ProfileService) UpdateStudentProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.University != nil {
		profile.University = *req.University
	}
	if req.College != nil {
		profile.College = *req.College
	}
	if req.Degree != nil {
		profile.Degree = *req.Degree
	}
	if req.Branch != nil {
		profile.Branch = *req.Branch
	}
	if req.Year != nil {
		if *req.Year < 1 || *req.Year > 6 {
			return nil, fmt.Errorf("%w: year must be between 1 and 6", apperrors.ErrValidationFailed)
		}
		profile.Year = *req.Year
	}
	if req.CGPA != nil {
		if *req.CGPA < 0 || *req.CGPA > 10 {
			return nil, fmt.Errorf("%w: cgpa must be between 0 and 10", apperrors.ErrValidationFailed)
		}
		profile.CGPA = *req.CGPA
	}
	if req.Bio != nil {
		profile.Bio = optional(*req.Bio)
	}
	if req.Skills != nil {
		profile.Skills = normalizeSkills(req.Skills)
	}
	if req.Twitter != nil {
		profile.Twitter = optional(*req.Twitter)
	}
	if req.GitHub != nil {
		profile.GitHub = optional(*req.GitHub)
	}
	if req.LinkedIn != nil {
		profile.LinkedIn = optional(*req.LinkedIn)
	}
	if req.Kaggle != nil {
		profile.Kaggle = optional(*req.Kaggle)
	}

	if err := s.studentRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return dto.NewStudentProfileResponse(profile), nil
}

// GetHostProfile returns the caller's host profile
func (s *ProfileService) GetHostProfile(ctx context.Context, userID uuid.UUID) (*dto.HostProfileResponse, error) {
	profile, err := s.hostRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewHostProfileResponse(profile), nil
}

// UpdateHostProfile applies a partial edit. The verified flag is not
// reachable from here; only the admin endpoint flips it.
func (s *ProfileService) UpdateHostProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateHostProfileRequest) (*dto.HostProfileResponse, error) {
	profile, err := s.hostRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.Phone != nil {
		profile.Phone = optional(*req.Phone)
	}
	if req.Address != nil {
		profile.Address = optional(*req.Address)
	}
	if req.Bio != nil {
		profile.Bio = optional(*req.Bio)
	}

	if err := s.hostRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return dto.NewHostProfileResponse(profile), nil
}
