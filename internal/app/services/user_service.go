package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/app/repositories"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
	"github.com/arjn/careermatch/internal/pkg/helpers"
)

// UserService manages accounts and the admin operations over them
type UserService struct {
	userRepo repositories.IUserRepository
	hostRepo repositories.IHostProfileRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	hostRepo repositories.IHostProfileRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		hostRepo: hostRepo,
		logger:   logger,
	}
}

// GetMe returns the caller's account
func (s *UserService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateAccount applies partial account edits
func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, req *dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if len(*req.Username) < minUsernameLength {
			return nil, fmt.Errorf("%w: username must be at least %d characters long", apperrors.ErrInvalidUsername, minUsernameLength)
		}
		taken, err := s.userRepo.UsernameExists(ctx, *req.Username)
		if err != nil {
			return nil, fmt.Errorf("error checking username: %w", err)
		}
		if taken {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		if err := s.userRepo.UpdateUsername(ctx, userID, *req.Username); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers returns a page of accounts, optionally filtered by role
func (s *UserService) ListUsers(ctx context.Context, query *dto.UserListQuery) (*dto.UserListResponse, error) {
	page, size := helpers.NormalizePage(query.Page, query.PageSize)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := s.userRepo.List(ctx, query.Role, int(offset), limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}

	return &dto.UserListResponse{
		Users:    items,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// VerifyHost marks a host organization as verified
func (s *UserService) VerifyHost(ctx context.Context, hostUserID uuid.UUID) (*dto.VerifyHostResponse, error) {
	if err := s.hostRepo.SetVerified(ctx, hostUserID, true); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", hostUserID.String()).Msg("Host organization verified")

	return &dto.VerifyHostResponse{
		UserID:   hostUserID.String(),
		Verified: true,
	}, nil
}
