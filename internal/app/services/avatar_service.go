package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/app/repositories"
	"github.com/arjn/careermatch/internal/pkg/avatar"
	"github.com/arjn/careermatch/internal/pkg/objectstorage"
)

// AvatarService runs the crop-and-upload pipeline. Every stage must
// succeed before the account reference changes; a failure anywhere leaves
// the previous avatar untouched.
type AvatarService struct {
	userRepo repositories.IUserRepository
	store    objectstorage.ObjectStore
	logger   zerolog.Logger
}

// NewAvatarService creates a new AvatarService
func NewAvatarService(
	userRepo repositories.IUserRepository,
	store objectstorage.ObjectStore,
	logger zerolog.Logger,
) *AvatarService {
	return &AvatarService{
		userRepo: userRepo,
		store:    store,
		logger:   logger,
	}
}

// Upload crops the source image to the requested selection, stores the
// result and points the account at it
func (s *AvatarService) Upload(ctx context.Context, userID uuid.UUID, imageData []byte, crop avatar.CropRequest) (*dto.AvatarUploadResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	src, err := avatar.Decode(imageData)
	if err != nil {
		return nil, err
	}

	rendered, err := avatar.Render(src, crop)
	if err != nil {
		return nil, err
	}

	encoded, err := avatar.EncodeJPEG(rendered)
	if err != nil {
		return nil, err
	}

	// New key per upload; historical objects are retained.
	objectName := fmt.Sprintf("%s/%s.jpg", userID.String(), uuid.New().String())
	if err := s.store.Upload(ctx, objectName, encoded, "image/jpeg"); err != nil {
		return nil, err
	}

	avatarURL := s.store.PublicURL(objectName)
	if err := s.userRepo.UpdateAvatarURL(ctx, userID, &avatarURL); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", userID.String()).Str("object", objectName).Msg("Avatar uploaded")

	return &dto.AvatarUploadResponse{AvatarURL: avatarURL}, nil
}

// Delete clears the account's avatar reference and removes the stored object
func (s *AvatarService) Delete(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.AvatarURL == nil {
		return nil
	}

	if err := s.userRepo.UpdateAvatarURL(ctx, userID, nil); err != nil {
		return err
	}

	if oldObject, ok := s.store.ObjectNameFromURL(*user.AvatarURL); ok {
		if err := s.store.Remove(ctx, oldObject); err != nil {
			s.logger.Warn().Err(err).Str("object", oldObject).Msg("Failed to remove avatar object")
		}
	}

	return nil
}
