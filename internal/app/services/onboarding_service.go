package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/arjn/careermatch/internal/app/models"
	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/app/repositories"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
)

// OnboardingService drives the profile-completion flow between signup and
// first use. An account is complete once either profile table holds its
// row; the role column follows the profile, never the other way around.
type OnboardingService struct {
	userRepo    repositories.IUserRepository
	studentRepo repositories.IStudentProfileRepository
	hostRepo    repositories.IHostProfileRepository
	txManager   repositories.TxManager
	logger      zerolog.Logger
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(
	userRepo repositories.IUserRepository,
	studentRepo repositories.IStudentProfileRepository,
	hostRepo repositories.IHostProfileRepository,
	txManager repositories.TxManager,
	logger zerolog.Logger,
) *OnboardingService {
	return &OnboardingService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		hostRepo:    hostRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Status reports where the account stands in the completion flow
func (s *OnboardingService) Status(ctx context.Context, userID uuid.UUID) (*dto.OnboardingStatusResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.EmailVerified {
		return &dto.OnboardingStatusResponse{
			State:    dto.OnboardingPendingVerification,
			Redirect: "/signup",
		}, nil
	}

	if user.Role == models.RoleAdmin {
		return &dto.OnboardingStatusResponse{
			State:    dto.OnboardingComplete,
			Role:     models.RoleAdmin,
			Redirect: models.RoleAdmin.HomePath(),
		}, nil
	}

	isStudent, err := s.studentRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking student profile: %w", err)
	}
	if isStudent {
		return &dto.OnboardingStatusResponse{
			State:    dto.OnboardingComplete,
			Role:     models.RoleStudent,
			Redirect: models.RoleStudent.HomePath(),
		}, nil
	}

	isHost, err := s.hostRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking host profile: %w", err)
	}
	if isHost {
		return &dto.OnboardingStatusResponse{
			State:    dto.OnboardingComplete,
			Role:     models.RoleHost,
			Redirect: models.RoleHost.HomePath(),
		}, nil
	}

	return &dto.OnboardingStatusResponse{
		State:    dto.OnboardingPendingProfile,
		Redirect: "/signup/step-2",
	}, nil
}

func validateStudentProfile(req *dto.StudentProfileRequest) error {
	if req.Year < 1 || req.Year > 6 {
		return fmt.Errorf("%w: year must be between 1 and 6", apperrors.ErrValidationFailed)
	}
	if req.CGPA < 0 || req.CGPA > 10 {
		return fmt.Errorf("%w: cgpa must be between 0 and 10", apperrors.ErrValidationFailed)
	}
	return nil
}

// normalizeSkills trims entries and drops empty ones
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// CompleteStudent records student onboarding. The idempotence re-check,
// role update and profile insert share one transaction so an aborted
// request leaves no trace.
func (s *OnboardingService) CompleteStudent(ctx context.Context, userID uuid.UUID, req *dto.StudentProfileRequest) (*dto.CompleteProfileResponse, error) {
	if err := validateStudentProfile(req); err != nil {
		return nil, err
	}

	profile := &models.StudentProfile{
		UserID:     userID,
		Name:       req.Name,
		University: req.University,
		College:    req.College,
		Degree:     req.Degree,
		Branch:     req.Branch,
		Year:       req.Year,
		CGPA:       req.CGPA,
		Credits:    0,
		Consent:    true,
		Bio:        optional(req.Bio),
		Twitter:    optional(req.Twitter),
		GitHub:     optional(req.GitHub),
		LinkedIn:   optional(req.LinkedIn),
		Kaggle:     optional(req.Kaggle),
		Skills:     normalizeSkills(req.Skills),
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.guardNotOnboardedTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.userRepo.UpdateRoleTx(ctx, tx, userID, models.RoleStudent); err != nil {
			return err
		}
		return s.studentRepo.InsertTx(ctx, tx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", userID.String()).Msg("Student onboarding completed")

	return &dto.CompleteProfileResponse{
		Role:     models.RoleStudent,
		Redirect: models.RoleStudent.HomePath(),
	}, nil
}

// CompleteHost records host onboarding inside the same transactional
// envelope as CompleteStudent. New hosts start unverified.
func (s *OnboardingService) CompleteHost(ctx context.Context, userID uuid.UUID, req *dto.HostProfileRequest) (*dto.CompleteProfileResponse, error) {
	profile := &models.HostProfile{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   optional(req.Phone),
		Address: optional(req.Address),
		Bio:     optional(req.Bio),
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.guardNotOnboardedTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.userRepo.UpdateRoleTx(ctx, tx, userID, models.RoleHost); err != nil {
			return err
		}
		return s.hostRepo.InsertTx(ctx, tx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", userID.String()).Msg("Host onboarding completed")

	return &dto.CompleteProfileResponse{
		Role:     models.RoleHost,
		Redirect: models.RoleHost.HomePath(),
	}, nil
}

// guardNotOnboardedTx aborts when either profile table already holds a row
func (s *OnboardingService) guardNotOnboardedTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	isStudent, err := s.studentRepo.ExistsByUserIDTx(ctx, tx, userID)
	if err != nil {
		return fmt.Errorf("error checking student profile: %w", err)
	}
	isHost, err := s.hostRepo.ExistsByUserIDTx(ctx, tx, userID)
	if err != nil {
		return fmt.Errorf("error checking host profile: %w", err)
	}
	if isStudent || isHost {
		return apperrors.ErrProfileAlreadyExists
	}
	return nil
}
