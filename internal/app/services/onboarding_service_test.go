package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjn/careermatch/internal/app/models"
	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
)

type onboardingFixture struct {
	service     *OnboardingService
	userRepo    *fakeUserRepo
	studentRepo *fakeStudentRepo
	hostRepo    *fakeHostRepo
	txManager   *fakeTxManager
}

func newOnboardingFixture() *onboardingFixture {
	f := &onboardingFixture{
		userRepo:    newFakeUserRepo(),
		studentRepo: newFakeStudentRepo(),
		hostRepo:    newFakeHostRepo(),
		txManager:   &fakeTxManager{},
	}
	f.service = NewOnboardingService(f.userRepo, f.studentRepo, f.hostRepo, f.txManager, zerolog.Nop())
	return f
}

func validStudentRequest() *dto.StudentProfileRequest {
	return &dto.StudentProfileRequest{
		Name:       "Jane Doe",
		University: "State University",
		College:    "College of Engineering",
		Degree:     "BTech",
		Branch:     "Computer Science",
		Year:       3,
		CGPA:       8.5,
		Skills:     []string{"Go", " SQL ", "", "Docker"},
	}
}

func TestStatusPendingVerification(t *testing.T) {
	f := newOnboardingFixture()
	user := f.userRepo.add(&models.User{Email: "new@example.com", Username: "newuser", Role: models.RoleStudent})

	status, err := f.service.Status(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, dto.OnboardingPendingVerification, status.State)
	assert.Equal(t, "/signup", status.Redirect)
	// Profile tables are never consulted until the email is verified.
	assert.Equal(t, 0, f.studentRepo.calls)
	assert.Equal(t, 0, f.hostRepo.calls)
}

func TestStatusAdminIsAlwaysComplete(t *testing.T) {
	f := newOnboardingFixture()
	user := f.userRepo.add(&models.User{Email: "admin@example.com", Username: "adminuser", Role: models.RoleAdmin, EmailVerified: true})

	status, err := f.service.Status(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, dto.OnboardingComplete, status.State)
	assert.Equal(t, models.RoleAdmin, status.Role)
	assert.Equal(t, "/admin", status.Redirect)
	assert.Equal(t, 0, f.studentRepo.calls)
	assert.Equal(t, 0, f.hostRepo.calls)
}

func TestStatusFollowsProfileTables(t *testing.T) {
	t.Run("student profile present", func(t *testing.T) {
		f := newOnboardingFixture()
		user := f.userRepo.add(&models.User{Email: "s@example.com", Username: "stud", Role: models.RoleStudent, EmailVerified: true})
		f.studentRepo.profiles[user.ID] = &models.StudentProfile{UserID: user.ID}

		status, err := f.service.Status(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, dto.OnboardingComplete, status.State)
		assert.Equal(t, models.RoleStudent, status.Role)
		assert.Equal(t, "/home", status.Redirect)
	})

	t.Run("host profile present", func(t *testing.T) {
		f := newOnboardingFixture()
		user := f.userRepo.add(&models.User{Email: "h@example.com", Username: "host", Role: models.RoleHost, EmailVerified: true})
		f.hostRepo.profiles[user.ID] = &models.HostProfile{UserID: user.ID}

		status, err := f.service.Status(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, dto.OnboardingComplete, status.State)
		assert.Equal(t, models.RoleHost, status.Role)
		assert.Equal(t, "/host", status.Redirect)
	})

	t.Run("no profile", func(t *testing.T) {
		f := newOnboardingFixture()
		user := f.userRepo.add(&models.User{Email: "n@example.com", Username: "none", Role: models.RoleStudent, EmailVerified: true})

		status, err := f.service.Status(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, dto.OnboardingPendingProfile, status.State)
		assert.Equal(t, "/signup/step-2", status.Redirect)
	})
}

func TestCompleteStudentRejectsOutOfRangeFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.StudentProfileRequest)
	}{
		{"year below range", func(r *dto.StudentProfileRequest) { r.Year = 0 }},
		{"year above range", func(r *dto.StudentProfileRequest) { r.Year = 7 }},
		{"cgpa negative", func(r *dto.StudentProfileRequest) { r.CGPA = -0.1 }},
		{"cgpa above scale", func(r *dto.StudentProfileRequest) { r.CGPA = 10.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOnboardingFixture()
			user := f.userRepo.add(&models.User{Email: "s@example.com", Username: "stud", Role: models.RoleStudent, EmailVerified: true})
			req := validStudentRequest()
			tt.mutate(req)

			_, err := f.service.CompleteStudent(context.Background(), user.ID, req)

			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, 0, f.txManager.begun)
			assert.Equal(t, 0, f.studentRepo.inserts)
		})
	}
}

func TestCompleteStudentAcceptsRangeBoundaries(t *testing.T) {
	f := newOnboardingFixture()
	user := f.userRepo.add(&models.User{Email: "s@example.com", Username: "stud", Role: models.RoleStudent, EmailVerified: true})

	// Both ranges are inclusive; first year with a cgpa of 0 is legal.
	req := validStudentRequest()
	req.Year = 1
	req.CGPA = 0

	_, err := f.service.CompleteStudent(context.Background(), user.ID, req)

	require.NoError(t, err)
	profile := f.studentRepo.profiles[user.ID]
	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.Year)
	assert.Equal(t, 0.0, profile.CGPA)
}

func TestCompleteStudentSetsDefaultsAndNormalizes(t *testing.T) {
	f := newOnboardingFixture()
	user := f.userRepo.add(&models.User{Email: "s@example.com", Username: "stud", Role: models.RoleStudent, EmailVerified: true})

	resp, err := f.service.CompleteStudent(context.Background(), user.ID, validStudentRequest())

	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.Role)
	assert.Equal(t, "/home", resp.Redirect)
	assert.Equal(t, 1, f.txManager.begun)

	profile := f.studentRepo.profiles[user.ID]
	require.NotNil(t, profile)
	assert.Equal(t, 0, profile.Credits)
	assert.True(t, profile.Consent)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, profile.Skills)
	assert.Nil(t, profile.Bio)
	assert.Nil(t, profile.GitHub)

	assert.Equal(t, []models.Role{models.RoleStudent}, f.userRepo.roleUpdates)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestCompleteStudentIsNotRepeatable(t *testing.T) {
	f := newOnboardingFixture()
	user := f.userRepo.add(&models.User{Email: "s@example.com", Username: "stud", Role: models.RoleStudent, EmailVerified: true})

	_, err := f.service.CompleteStudent(context.Background(), user.ID, validStudentRequest())
	require.NoError(t, err)

	_, err = f.service.CompleteStudent(context.Background(), user.ID, validStudentRequest())
	assert.ErrorIs(t, err, apperrors.ErrProfileAlreadyExists)
	assert.Equal(t, 1, f.studentRepo.inserts)
}

func TestCompleteStudentKeepsProfilesIndependent(t *testing.T) {
	f := newOnboardingFixture()
	first := f.userRepo.add(&models.User{Email: "a@example.com", Username: "firststud", Role: models.RoleStudent, EmailVerified: true})
	second := f.userRepo.add(&models.User{Email: "b@example.com", Username: "secondstud", Role: models.RoleStudent, EmailVerified: true})

	reqA := validStudentRequest()
	reqA.Skills = []string{"Go"}
	reqB := validStudentRequest()
	reqB.Skills = []string{"Rust", "C"}

	_, err := f.service.CompleteStudent(context.Background(), first.ID, reqA)
	require.NoError(t, err)
	_, err = f.service.CompleteStudent(context.Background(), second.ID, reqB)
	require.NoError(t, err)

	assert.Equal(t, []string{"Go"}, f.studentRepo.profiles[first.ID].Skills)
	assert.Equal(t, []string{"Rust", "C"}, f.studentRepo.profiles[second.ID].Skills)
}

func TestCompleteHostBlockedByExistingStudentProfile(t *testing.T) {
	f := newOnboardingFixture()
	user := f.userRepo.add(&models.User{Email: "s@example.com", Username: "stud", Role: models.RoleStudent, EmailVerified: true})
	f.studentRepo.profiles[user.ID] = &models.StudentProfile{UserID: user.ID}

	_, err := f.service.CompleteHost(context.Background(), user.ID, &dto.HostProfileRequest{
		Name:  "Acme Labs",
		Email: "contact@acme.test",
	})

	assert.ErrorIs(t, err, apperrors.ErrProfileAlreadyExists)
	assert.Equal(t, 0, f.hostRepo.inserts)
	assert.Empty(t, f.userRepo.roleUpdates)
}

func TestCompleteHostStartsUnverified(t *testing.T) {
	f := newOnboardingFixture()
	user := f.userRepo.add(&models.User{Email: "h@example.com", Username: "host", Role: models.RoleStudent, EmailVerified: true})

	resp, err := f.service.CompleteHost(context.Background(), user.ID, &dto.HostProfileRequest{
		Name:    "Acme Labs",
		Email:   "contact@acme.test",
		Phone:   "  ",
		Address: "1 Main Street",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleHost, resp.Role)
	assert.Equal(t, "/host", resp.Redirect)

	profile := f.hostRepo.profiles[user.ID]
	require.NotNil(t, profile)
	assert.False(t, profile.Verified)
	assert.Nil(t, profile.Phone)
	require.NotNil(t, profile.Address)
	assert.Equal(t, "1 Main Street", *profile.Address)

	assert.Equal(t, models.RoleHost, user.Role)
}
