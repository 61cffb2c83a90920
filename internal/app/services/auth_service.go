package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/arjn/careermatch/internal/app/models"
	"github.com/arjn/careermatch/internal/app/models/dto"
	"github.com/arjn/careermatch/internal/app/repositories"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
	"github.com/arjn/careermatch/internal/pkg/auth"
	"github.com/arjn/careermatch/internal/pkg/email"
)

const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = 1 * time.Hour
	minUsernameLength     = 3
	minPasswordLength     = 8
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService handles authentication operations
type AuthService struct {
	userRepo     repositories.IUserRepository
	tokenRepo    repositories.ITokenRepository
	verifyRepo   repositories.IVerificationTokenRepository
	resetRepo    repositories.IPasswordResetTokenRepository
	studentRepo  repositories.IStudentProfileRepository
	hostRepo     repositories.IHostProfileRepository
	txManager    repositories.TxManager
	jwtService   *auth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	verifyRepo repositories.IVerificationTokenRepository,
	resetRepo repositories.IPasswordResetTokenRepository,
	studentRepo repositories.IStudentProfileRepository,
	hostRepo repositories.IHostProfileRepository,
	txManager repositories.TxManager,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		verifyRepo:   verifyRepo,
		resetRepo:    resetRepo,
		studentRepo:  studentRepo,
		hostRepo:     hostRepo,
		txManager:    txManager,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrInvalidEmail)
	}
	if !emailRegex.MatchString(addr) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// validatePassword checks if a password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrInvalidPassword, minPasswordLength)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

// validateUsername checks if a username meets requirements
func (s *AuthService) validateUsername(username string) error {
	if len(strings.TrimSpace(username)) < minUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters long", apperrors.ErrInvalidUsername, minUsernameLength)
	}
	return nil
}

// validateRegistration runs every local check before any repository call
func (s *AuthService) validateRegistration(username, addr, password, confirmPassword string) error {
	if err := s.validateUsername(username); err != nil {
		return err
	}
	if err := s.validateEmail(addr); err != nil {
		return err
	}
	if err := s.validatePassword(password); err != nil {
		return err
	}
	if password != confirmPassword {
		return fmt.Errorf("%w: passwords do not match", apperrors.ErrInvalidPassword)
	}
	return nil
}

// Register creates a new account in the pending-verification state.
// The account row and its verification token are written in one
// transaction so no half-registered state survives a failure.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := s.validateRegistration(req.Username, req.Email, req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	exists, err = s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking if username exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	verificationToken, err := email.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("error generating verification token: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hashedPassword,
		Role:     models.RoleStudent,
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		return s.verifyRepo.CreateTokenTx(ctx, tx, user.ID, verificationToken, time.Now().Add(verificationTokenTTL))
	})
	if err != nil {
		return nil, err
	}

	if err := s.emailService.SendVerificationEmail(user.Email, user.Username, verificationToken); err != nil {
		// The account exists either way; the token can be re-sent.
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send verification email")
	}

	return &dto.RegisterResponse{
		UserID:  user.ID,
		Message: "Registration successful. Please check your email to verify your account.",
	}, nil
}

// RegisterAdmin creates a pre-verified administrator account through the
// configured secret signup path. Admins skip the onboarding flow entirely.
func (s *AuthService) RegisterAdmin(ctx context.Context, req *dto.AdminRegisterRequest) (*dto.LoginResponse, error) {
	if err := s.validateRegistration(req.Username, req.Email, req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	exists, err = s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking if username exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:         req.Email,
		Username:      req.Username,
		Password:      hashedPassword,
		Role:          models.RoleAdmin,
		EmailVerified: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID.String()).Msg("Administrator account created via secret signup path")

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    *token,
		User:     dto.NewUserResponse(user),
		Redirect: models.RoleAdmin.HomePath(),
	}, nil
}

// Login authenticates an account and reports where the client should land.
// The redirect comes from which profile table holds a row, not from the
// stored role column.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	redirect, err := s.deriveRedirect(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    *token,
		User:     dto.NewUserResponse(user),
		Redirect: redirect,
	}, nil
}

// deriveRedirect resolves the post-login surface: unverified accounts go
// back to signup, otherwise profile existence decides.
func (s *AuthService) deriveRedirect(ctx context.Context, user *models.User) (string, error) {
	if user.Role == models.RoleAdmin {
		return models.RoleAdmin.HomePath(), nil
	}
	if !user.EmailVerified {
		return "/signup", nil
	}

	isStudent, err := s.studentRepo.ExistsByUserID(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("error checking student profile: %w", err)
	}
	if isStudent {
		return models.RoleStudent.HomePath(), nil
	}

	isHost, err := s.hostRepo.ExistsByUserID(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("error checking host profile: %w", err)
	}
	if isHost {
		return models.RoleHost.HomePath(), nil
	}

	return "/signup/step-2", nil
}

// RefreshToken rotates a refresh token and returns a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	// Revoke the old token first so it can never be replayed.
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		// Logout is always treated as success; an unknown token is already
		// as logged-out as it can get.
		s.logger.Debug().Err(err).Msg("Logout with unknown or already revoked token")
	}
	return nil
}

// VerifyEmail consumes a verification token and activates the account
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.ErrInvalidEmailToken
	}

	userID, expiryDate, err := s.verifyRepo.GetTokenInfo(ctx, token)
	if err != nil {
		return err
	}

	if expiryDate.Before(time.Now()) {
		_ = s.verifyRepo.DeleteToken(ctx, token)
		return apperrors.ErrEmailTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error loading user for verification: %w", err)
	}
	if user.EmailVerified {
		_ = s.verifyRepo.DeleteToken(ctx, token)
		return apperrors.ErrEmailAlreadyVerified
	}

	if err := s.userRepo.SetEmailVerified(ctx, userID); err != nil {
		return fmt.Errorf("error marking email verified: %w", err)
	}

	if err := s.verifyRepo.DeleteToken(ctx, token); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to delete consumed verification token")
	}

	if err := s.emailService.SendWelcomeEmail(user.Email, user.Username); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
	}

	return nil
}

// ResendVerification re-issues a verification token. Unknown addresses are
// not revealed to the caller.
func (s *AuthService) ResendVerification(ctx context.Context, addr string) error {
	if err := s.validateEmail(addr); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, addr)
	if err != nil {
		s.logger.Debug().Str("email", addr).Msg("Verification resend requested for unknown email")
		return nil
	}
	if user.EmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	if err := s.verifyRepo.DeleteTokensByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("error clearing old verification tokens: %w", err)
	}

	token, err := email.GenerateToken()
	if err != nil {
		return fmt.Errorf("error generating verification token: %w", err)
	}
	if err := s.verifyRepo.CreateToken(ctx, user.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		return err
	}

	if err := s.emailService.SendVerificationEmail(user.Email, user.Username, token); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send verification email")
	}
	return nil
}

// ForgotPassword issues a reset token when the account exists. The caller
// always gets the same answer so addresses cannot be probed.
func (s *AuthService) ForgotPassword(ctx context.Context, addr string) error {
	if err := s.validateEmail(addr); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, addr)
	if err != nil {
		s.logger.Debug().Str("email", addr).Msg("Password reset requested for unknown email")
		return nil
	}

	token, err := email.GenerateToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}
	if err := s.resetRepo.CreateToken(ctx, user.ID, token, time.Now().Add(passwordResetTokenTTL)); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.Username, token); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
	}
	return nil
}

// ResetPassword consumes a single-use reset token and replaces the password
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.ErrInvalidResetToken
	}
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	userID, expiryDate, used, err := s.resetRepo.GetTokenInfo(ctx, token)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}
	if used {
		return apperrors.ErrResetTokenAlreadyUsed
	}
	if expiryDate.Before(time.Now()) {
		return apperrors.ErrInvalidResetToken
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}
	if err := s.resetRepo.MarkTokenAsUsed(ctx, token); err != nil {
		return err
	}

	// Existing sessions die with the old password.
	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Failed to revoke sessions after password reset")
	}

	return nil
}

// generateTokenResponse creates and persists a token pair
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
