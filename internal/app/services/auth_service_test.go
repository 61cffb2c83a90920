package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjn/careermatch/internal/app/models"
	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
	"github.com/arjn/careermatch/internal/pkg/auth"
)

type authFixture struct {
	service     *AuthService
	userRepo    *fakeUserRepo
	tokenRepo   *fakeTokenRepo
	verifyRepo  *fakeVerifyRepo
	resetRepo   *fakeResetRepo
	studentRepo *fakeStudentRepo
	hostRepo    *fakeHostRepo
	txManager   *fakeTxManager
	mailer      *fakeEmailService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    newFakeUserRepo(),
		tokenRepo:   newFakeTokenRepo(),
		verifyRepo:  newFakeVerifyRepo(),
		resetRepo:   newFakeResetRepo(),
		studentRepo: newFakeStudentRepo(),
		hostRepo:    newFakeHostRepo(),
		txManager:   &fakeTxManager{},
		mailer:      &fakeEmailService{},
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "unit-test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "careermatch-test",
	})
	f.service = NewAuthService(
		f.userRepo,
		f.tokenRepo,
		f.verifyRepo,
		f.resetRepo,
		f.studentRepo,
		f.hostRepo,
		f.txManager,
		jwtService,
		f.mailer,
		zerolog.Nop(),
	)
	return f
}

func (f *authFixture) addUser(t *testing.T, email, username, password string, role models.Role, verified bool) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return f.userRepo.add(&models.User{
		Email:         email,
		Username:      username,
		Password:      hashed,
		Role:          role,
		EmailVerified: verified,
	})
}

func TestRegisterValidatesBeforeTouchingStorage(t *testing.T) {
	f := newAuthFixture()

	// The username check must fire first and no repository call may
	// happen, even though the password is invalid too.
	_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Username:        "ab",
		Email:           "a@b.com",
		Password:        "short",
		ConfirmPassword: "short",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidUsername)
	assert.Equal(t, 0, f.userRepo.calls)
	assert.Equal(t, 0, f.txManager.begun)
}

func TestRegisterPasswordRules(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "a1b2c3"},
		{"no digit", "abcdefgh"},
		{"no letter", "12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
				Username:        "johndoe",
				Email:           "john@example.com",
				Password:        tt.password,
				ConfirmPassword: tt.password,
			})
			assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
			assert.Equal(t, 0, f.userRepo.calls)
		})
	}
}

func TestRegisterConfirmPasswordMismatch(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Username:        "johndoe",
		Email:           "john@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	assert.Equal(t, 0, f.userRepo.calls)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "john@example.com", "existing", "secret123", models.RoleStudent, true)

	_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Username:        "johndoe",
		Email:           "john@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Equal(t, 0, f.txManager.begun)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "other@example.com", "johndoe", "secret123", models.RoleStudent, true)

	_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Username:        "johndoe",
		Email:           "john@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
	assert.Equal(t, 0, f.txManager.begun)
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Username:        "johndoe",
		Email:           "john@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)

	user, err := f.userRepo.GetByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, user.ID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.False(t, user.EmailVerified)
	assert.NotEqual(t, "secret123", user.Password)

	// Account and token are written in one transaction, then one mail
	// goes out carrying the stored token.
	assert.Equal(t, 1, f.txManager.begun)
	assert.Equal(t, 1, f.mailer.verificationSent)
	require.NotEmpty(t, f.mailer.lastToken)
	tokenUserID, _, err := f.verifyRepo.GetTokenInfo(context.Background(), f.mailer.lastToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, tokenUserID)
}

func TestRegisterAdminIsPreVerified(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.service.RegisterAdmin(context.Background(), &dto.AdminRegisterRequest{
		Username:        "rootadmin",
		Email:           "admin@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Name:            "Site Admin",
	})

	require.NoError(t, err)
	assert.Equal(t, "/admin", resp.Redirect)
	assert.NotEmpty(t, resp.Token.AccessToken)

	user, err := f.userRepo.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, 0, f.mailer.verificationSent)
}

func TestRegisterAdminRequiresName(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.RegisterAdmin(context.Background(), &dto.AdminRegisterRequest{
		Username:        "rootadmin",
		Email:           "admin@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Name:            "   ",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, true)

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "john@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRedirectFollowsProfileExistence(t *testing.T) {
	ctx := context.Background()

	t.Run("no profile yet", func(t *testing.T) {
		f := newAuthFixture()
		f.addUser(t, "new@example.com", "newuser", "secret123", models.RoleStudent, true)

		resp, err := f.service.Login(ctx, &dto.LoginRequest{Email: "new@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "/signup/step-2", resp.Redirect)
	})

	t.Run("student profile", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addUser(t, "student@example.com", "studentuser", "secret123", models.RoleStudent, true)
		f.studentRepo.profiles[user.ID] = &models.StudentProfile{UserID: user.ID}

		resp, err := f.service.Login(ctx, &dto.LoginRequest{Email: "student@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "/home", resp.Redirect)
	})

	t.Run("host profile", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addUser(t, "host@example.com", "hostuser", "secret123", models.RoleHost, true)
		f.hostRepo.profiles[user.ID] = &models.HostProfile{UserID: user.ID}

		resp, err := f.service.Login(ctx, &dto.LoginRequest{Email: "host@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "/host", resp.Redirect)
	})

	t.Run("unverified email goes back to signup", func(t *testing.T) {
		f := newAuthFixture()
		user := f.addUser(t, "pending@example.com", "pendinguser", "secret123", models.RoleStudent, false)
		// Even an existing profile row cannot pull an unverified account
		// past the signup surface.
		f.studentRepo.profiles[user.ID] = &models.StudentProfile{UserID: user.ID}

		resp, err := f.service.Login(ctx, &dto.LoginRequest{Email: "pending@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "/signup", resp.Redirect)
		assert.Equal(t, 0, f.studentRepo.calls)
		assert.Equal(t, 0, f.hostRepo.calls)
	})

	t.Run("admin skips profile lookups", func(t *testing.T) {
		f := newAuthFixture()
		f.addUser(t, "admin@example.com", "adminuser", "secret123", models.RoleAdmin, true)

		resp, err := f.service.Login(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "/admin", resp.Redirect)
		assert.Equal(t, 0, f.studentRepo.calls)
		assert.Equal(t, 0, f.hostRepo.calls)
	})
}

func TestLoginPersistsRefreshToken(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, true)

	resp, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "john@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Token.RefreshToken)
	tokenUserID, _, err := f.tokenRepo.GetTokenByValue(context.Background(), resp.Token.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, tokenUserID)
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, true)
	require.NoError(t, f.tokenRepo.CreateToken(context.Background(), "old-token", user.ID, time.Now().Add(time.Hour)))

	resp, err := f.service.RefreshToken(context.Background(), "old-token")

	require.NoError(t, err)
	assert.NotEqual(t, "old-token", resp.RefreshToken)

	// The old token must be dead after rotation.
	_, _, err = f.tokenRepo.GetTokenByValue(context.Background(), "old-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, _, err = f.tokenRepo.GetTokenByValue(context.Background(), resp.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshTokenRejectsRevoked(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, true)
	require.NoError(t, f.tokenRepo.CreateToken(context.Background(), "revoked-token", user.ID, time.Now().Add(time.Hour)))
	require.NoError(t, f.tokenRepo.RevokeToken(context.Background(), "revoked-token"))

	_, err := f.service.RefreshToken(context.Background(), "revoked-token")

	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogoutIsAlwaysSuccessful(t *testing.T) {
	f := newAuthFixture()

	assert.NoError(t, f.service.Logout(context.Background(), "never-issued"))
	assert.NoError(t, f.service.Logout(context.Background(), ""))
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	f := newAuthFixture()

	err := f.service.VerifyEmail(context.Background(), "no-such-token")

	assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, false)
	require.NoError(t, f.verifyRepo.CreateToken(context.Background(), user.ID, "stale-token", time.Now().Add(-time.Minute)))

	err := f.service.VerifyEmail(context.Background(), "stale-token")

	assert.ErrorIs(t, err, apperrors.ErrEmailTokenExpired)
	assert.False(t, user.EmailVerified)
	// Consumed either way; a fresh token has to be requested.
	_, _, err = f.verifyRepo.GetTokenInfo(context.Background(), "stale-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
}

func TestVerifyEmailAlreadyVerified(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, true)
	require.NoError(t, f.verifyRepo.CreateToken(context.Background(), user.ID, "late-token", time.Now().Add(time.Hour)))

	err := f.service.VerifyEmail(context.Background(), "late-token")

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyVerified)
}

func TestVerifyEmailActivatesAccount(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, false)
	require.NoError(t, f.verifyRepo.CreateToken(context.Background(), user.ID, "good-token", time.Now().Add(time.Hour)))

	err := f.service.VerifyEmail(context.Background(), "good-token")

	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, 1, f.mailer.welcomeSent)
	_, _, err = f.verifyRepo.GetTokenInfo(context.Background(), "good-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
}

func TestResendVerificationHidesUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	err := f.service.ResendVerification(context.Background(), "ghost@example.com")

	assert.NoError(t, err)
	assert.Equal(t, 0, f.mailer.verificationSent)
}

func TestResendVerificationReplacesOldTokens(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, false)
	require.NoError(t, f.verifyRepo.CreateToken(context.Background(), user.ID, "old-token", time.Now().Add(time.Hour)))

	err := f.service.ResendVerification(context.Background(), "john@example.com")

	require.NoError(t, err)
	assert.Equal(t, 1, f.mailer.verificationSent)
	_, _, err = f.verifyRepo.GetTokenInfo(context.Background(), "old-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
	_, _, err = f.verifyRepo.GetTokenInfo(context.Background(), f.mailer.lastToken)
	assert.NoError(t, err)
}

func TestForgotPasswordHidesUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	err := f.service.ForgotPassword(context.Background(), "ghost@example.com")

	assert.NoError(t, err)
	assert.Equal(t, 0, f.mailer.resetSent)
}

func TestResetPasswordConsumesTokenAndKillsSessions(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, true)
	require.NoError(t, f.resetRepo.CreateToken(context.Background(), user.ID, "reset-token", time.Now().Add(time.Hour)))
	require.NoError(t, f.tokenRepo.CreateToken(context.Background(), "session-token", user.ID, time.Now().Add(time.Hour)))

	err := f.service.ResetPassword(context.Background(), "reset-token", "newsecret9")

	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(user.Password, "newsecret9"))
	assert.Equal(t, 0, f.tokenRepo.activeCountFor(user.ID))
	assert.ErrorIs(t, f.service.ResetPassword(context.Background(), "reset-token", "another11"), apperrors.ErrResetTokenAlreadyUsed)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "john@example.com", "johndoe", "secret123", models.RoleStudent, true)
	require.NoError(t, f.resetRepo.CreateToken(context.Background(), user.ID, "stale-reset", time.Now().Add(-time.Minute)))

	err := f.service.ResetPassword(context.Background(), "stale-reset", "newsecret9")

	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
}
