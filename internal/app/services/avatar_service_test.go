package services

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjn/careermatch/internal/app/models"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
	"github.com/arjn/careermatch/internal/pkg/avatar"
)

// fakeObjectStore keeps uploaded objects in memory.
type fakeObjectStore struct {
	objects map[string][]byte
	removed []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (s *fakeObjectStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	s.objects[objectName] = data
	return nil
}

func (s *fakeObjectStore) Remove(ctx context.Context, objectName string) error {
	delete(s.objects, objectName)
	s.removed = append(s.removed, objectName)
	return nil
}

func (s *fakeObjectStore) PublicURL(objectName string) string {
	return "http://storage.test/avatars/" + objectName
}

func (s *fakeObjectStore) ObjectNameFromURL(url string) (string, bool) {
	name, ok := strings.CutPrefix(url, "http://storage.test/avatars/")
	return name, ok
}

func testImageBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 200, G: 120, B: 40, A: 255}), image.Point{}, draw.Src)
	data, err := avatar.EncodeJPEG(img)
	require.NoError(t, err)
	return data
}

func validCrop() avatar.CropRequest {
	return avatar.CropRequest{X: 0, Y: 0, Width: 32, Height: 32, DisplayWidth: 64, DisplayHeight: 64}
}

func newAvatarFixture() (*AvatarService, *fakeUserRepo, *fakeObjectStore) {
	userRepo := newFakeUserRepo()
	store := newFakeObjectStore()
	return NewAvatarService(userRepo, store, zerolog.Nop()), userRepo, store
}

func TestAvatarUploadStoresObjectAndUpdatesReference(t *testing.T) {
	service, userRepo, store := newAvatarFixture()
	user := userRepo.add(&models.User{Email: "a@example.com", Username: "avataruser", Role: models.RoleStudent})

	resp, err := service.Upload(context.Background(), user.ID, testImageBytes(t), validCrop())

	require.NoError(t, err)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, resp.AvatarURL, *user.AvatarURL)
	assert.Len(t, store.objects, 1)

	objectName, ok := store.ObjectNameFromURL(resp.AvatarURL)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(objectName, user.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(objectName, ".jpg"))
}

func TestAvatarUploadRetainsPreviousObjects(t *testing.T) {
	service, userRepo, store := newAvatarFixture()
	user := userRepo.add(&models.User{Email: "a@example.com", Username: "avataruser", Role: models.RoleStudent})

	first, err := service.Upload(context.Background(), user.ID, testImageBytes(t), validCrop())
	require.NoError(t, err)
	second, err := service.Upload(context.Background(), user.ID, testImageBytes(t), validCrop())
	require.NoError(t, err)

	assert.NotEqual(t, first.AvatarURL, second.AvatarURL)
	assert.Len(t, store.objects, 2)
	assert.Empty(t, store.removed)
	assert.Equal(t, second.AvatarURL, *user.AvatarURL)
}

func TestAvatarUploadRejectsBadImage(t *testing.T) {
	service, userRepo, store := newAvatarFixture()
	user := userRepo.add(&models.User{Email: "a@example.com", Username: "avataruser", Role: models.RoleStudent})

	_, err := service.Upload(context.Background(), user.ID, []byte("not an image"), validCrop())

	assert.ErrorIs(t, err, apperrors.ErrUnsupportedImage)
	assert.Empty(t, store.objects)
	assert.Nil(t, user.AvatarURL)
}

func TestAvatarUploadUnknownUser(t *testing.T) {
	service, _, store := newAvatarFixture()

	_, err := service.Upload(context.Background(), uuid.New(), testImageBytes(t), validCrop())

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Empty(t, store.objects)
}

func TestAvatarDeleteClearsReferenceAndObject(t *testing.T) {
	service, userRepo, store := newAvatarFixture()
	user := userRepo.add(&models.User{Email: "a@example.com", Username: "avataruser", Role: models.RoleStudent})

	resp, err := service.Upload(context.Background(), user.ID, testImageBytes(t), validCrop())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), user.ID))

	assert.Nil(t, user.AvatarURL)
	assert.Empty(t, store.objects)

	objectName, _ := store.ObjectNameFromURL(resp.AvatarURL)
	assert.Equal(t, []string{objectName}, store.removed)
}

func TestAvatarDeleteWithoutAvatarIsNoop(t *testing.T) {
	service, userRepo, store := newAvatarFixture()
	user := userRepo.add(&models.User{Email: "a@example.com", Username: "avataruser", Role: models.RoleStudent})

	require.NoError(t, service.Delete(context.Background(), user.ID))

	assert.Empty(t, store.removed)
}
