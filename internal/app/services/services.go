// Package services contains the business logic layer.
//
// Services defined in this package:
// - AuthService: registration, login, token lifecycle, email verification
// - OnboardingService: the profile-completion flow after signup
// - ProfileService: student and host profile reads and edits
// - UserService: account management and admin operations
// - AvatarService: avatar crop, upload and removal
package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/pkg/avatar"
)

// IAuthService is the authentication surface used by controllers
type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	RegisterAdmin(ctx context.Context, req *dto.AdminRegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// IOnboardingService drives the profile-completion state machine
type IOnboardingService interface {
	Status(ctx context.Context, userID uuid.UUID) (*dto.OnboardingStatusResponse, error)
	CompleteStudent(ctx context.Context, userID uuid.UUID, req *dto.StudentProfileRequest) (*dto.CompleteProfileResponse, error)
	CompleteHost(ctx context.Context, userID uuid.UUID, req *dto.HostProfileRequest) (*dto.CompleteProfileResponse, error)
}

// IProfileService manages post-onboarding profile edits
type IProfileService interface {
	GetStudentProfile(ctx context.Context, userID uuid.UUID) (*dto.StudentProfileResponse, error)
	UpdateStudentProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error)
	GetHostProfile(ctx context.Context, userID uuid.UUID) (*dto.HostProfileResponse, error)
	UpdateHostProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateHostProfileRequest) (*dto.HostProfileResponse, error)
}

// IUserService manages accounts
type IUserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, req *dto.UpdateAccountRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, query *dto.UserListQuery) (*dto.UserListResponse, error)
	VerifyHost(ctx context.Context, hostUserID uuid.UUID) (*dto.VerifyHostResponse, error)
}

// IAvatarService handles the avatar upload pipeline
type IAvatarService interface {
	Upload(ctx context.Context, userID uuid.UUID, imageData []byte, crop avatar.CropRequest) (*dto.AvatarUploadResponse, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
