package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arjn/careermatch/internal/app/models"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
)

// fakeUserRepo is an in-memory IUserRepository. Calls counts every
// repository hit so tests can assert that validation short-circuits
// before any data access.
type fakeUserRepo struct {
	users       map[uuid.UUID]*models.User
	byEmail     map[string]*models.User
	byUsername  map[string]*models.User
	calls       int
	roleUpdates []models.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      make(map[uuid.UUID]*models.User),
		byEmail:    make(map[string]*models.User),
		byUsername: make(map[string]*models.User),
	}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	r.byEmail[user.Email] = user
	r.byUsername[user.Username] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.calls++
	r.add(user)
	return nil
}

func (r *fakeUserRepo) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	r.calls++
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.calls++
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.calls++
	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	r.calls++
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	r.calls++
	_, ok := r.byUsername[username]
	return ok, nil
}

func (r *fakeUserRepo) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	r.calls++
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.byUsername, user.Username)
	user.Username = username
	r.byUsername[username] = user
	return nil
}

func (r *fakeUserRepo) UpdateRoleTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, role models.Role) error {
	r.calls++
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Role = role
	r.roleUpdates = append(r.roleUpdates, role)
	return nil
}

func (r *fakeUserRepo) UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL *string) error {
	r.calls++
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.AvatarURL = avatarURL
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	r.calls++
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	r.calls++
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.EmailVerified = true
	return nil
}

func (r *fakeUserRepo) IsEmailVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	r.calls++
	user, ok := r.users[id]
	if !ok {
		return false, apperrors.ErrUserNotFound
	}
	return user.EmailVerified, nil
}

func (r *fakeUserRepo) List(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error) {
	r.calls++
	out := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		if role != "" && string(user.Role) != role {
			continue
		}
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

type storedRefreshToken struct {
	userID  uuid.UUID
	expiry  time.Time
	revoked bool
}

// fakeTokenRepo is an in-memory ITokenRepository.
type fakeTokenRepo struct {
	tokens map[string]*storedRefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedRefreshToken)}
}

func (r *fakeTokenRepo) CreateToken(ctx context.Context, token string, userID uuid.UUID, expiryDate time.Time) error {
	r.tokens[token] = &storedRefreshToken{userID: userID, expiry: expiryDate}
	return nil
}

func (r *fakeTokenRepo) GetTokenByValue(ctx context.Context, token string) (uuid.UUID, time.Time, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return uuid.Nil, time.Time{}, apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return uuid.Nil, time.Time{}, apperrors.ErrTokenRevoked
	}
	if stored.expiry.Before(time.Now()) {
		return uuid.Nil, time.Time{}, apperrors.ErrTokenExpired
	}
	return stored.userID, stored.expiry, nil
}

func (r *fakeTokenRepo) RevokeToken(ctx context.Context, token string) error {
	stored, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	for _, stored := range r.tokens {
		if stored.userID == userID {
			stored.revoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) activeCountFor(userID uuid.UUID) int {
	count := 0
	for _, stored := range r.tokens {
		if stored.userID == userID && !stored.revoked {
			count++
		}
	}
	return count
}

type storedVerificationToken struct {
	userID uuid.UUID
	expiry time.Time
}

// fakeVerifyRepo is an in-memory IVerificationTokenRepository.
type fakeVerifyRepo struct {
	tokens map[string]storedVerificationToken
}

func newFakeVerifyRepo() *fakeVerifyRepo {
	return &fakeVerifyRepo{tokens: make(map[string]storedVerificationToken)}
}

func (r *fakeVerifyRepo) CreateToken(ctx context.Context, userID uuid.UUID, token string, expiryDate time.Time) error {
	r.tokens[token] = storedVerificationToken{userID: userID, expiry: expiryDate}
	return nil
}

func (r *fakeVerifyRepo) CreateTokenTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, token string, expiryDate time.Time) error {
	return r.CreateToken(ctx, userID, token, expiryDate)
}

func (r *fakeVerifyRepo) GetTokenInfo(ctx context.Context, token string) (uuid.UUID, time.Time, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return uuid.Nil, time.Time{}, apperrors.ErrInvalidEmailToken
	}
	return stored.userID, stored.expiry, nil
}

func (r *fakeVerifyRepo) DeleteToken(ctx context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeVerifyRepo) DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	for token, stored := range r.tokens {
		if stored.userID == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

func (r *fakeVerifyRepo) DeleteExpiredTokens(ctx context.Context) error {
	return nil
}

type storedResetToken struct {
	userID uuid.UUID
	expiry time.Time
	used   bool
}

// fakeResetRepo is an in-memory IPasswordResetTokenRepository.
type fakeResetRepo struct {
	tokens map[string]*storedResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*storedResetToken)}
}

func (r *fakeResetRepo) CreateToken(ctx context.Context, userID uuid.UUID, token string, expiryDate time.Time) error {
	r.tokens[token] = &storedResetToken{userID: userID, expiry: expiryDate}
	return nil
}

func (r *fakeResetRepo) GetTokenInfo(ctx context.Context, token string) (uuid.UUID, time.Time, bool, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return uuid.Nil, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return stored.userID, stored.expiry, stored.used, nil
}

func (r *fakeResetRepo) MarkTokenAsUsed(ctx context.Context, token string) error {
	stored, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.used = true
	return nil
}

func (r *fakeResetRepo) DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	for token, stored := range r.tokens {
		if stored.userID == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

func (r *fakeResetRepo) DeleteExpiredTokens(ctx context.Context) error {
	return nil
}

// fakeStudentRepo is an in-memory IStudentProfileRepository.
type fakeStudentRepo struct {
	profiles map[uuid.UUID]*models.StudentProfile
	calls    int
	inserts  int
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{profiles: make(map[uuid.UUID]*models.StudentProfile)}
}

func (r *fakeStudentRepo) InsertTx(ctx context.Context, tx pgx.Tx, profile *models.StudentProfile) error {
	r.calls++
	r.inserts++
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	r.calls++
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

func (r *fakeStudentRepo) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	r.calls++
	_, ok := r.profiles[userID]
	return ok, nil
}

func (r *fakeStudentRepo) ExistsByUserIDTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (bool, error) {
	return r.ExistsByUserID(ctx, userID)
}

func (r *fakeStudentRepo) Update(ctx context.Context, profile *models.StudentProfile) error {
	r.calls++
	if _, ok := r.profiles[profile.UserID]; !ok {
		return apperrors.ErrProfileNotFound
	}
	r.profiles[profile.UserID] = profile
	return nil
}

// fakeHostRepo is an in-memory IHostProfileRepository.
type fakeHostRepo struct {
	profiles map[uuid.UUID]*models.HostProfile
	calls    int
	inserts  int
}

func newFakeHostRepo() *fakeHostRepo {
	return &fakeHostRepo{profiles: make(map[uuid.UUID]*models.HostProfile)}
}

func (r *fakeHostRepo) InsertTx(ctx context.Context, tx pgx.Tx, profile *models.HostProfile) error {
	r.calls++
	r.inserts++
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeHostRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.HostProfile, error) {
	r.calls++
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

func (r *fakeHostRepo) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	r.calls++
	_, ok := r.profiles[userID]
	return ok, nil
}

func (r *fakeHostRepo) ExistsByUserIDTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (bool, error) {
	return r.ExistsByUserID(ctx, userID)
}

func (r *fakeHostRepo) Update(ctx context.Context, profile *models.HostProfile) error {
	r.calls++
	existing, ok := r.profiles[profile.UserID]
	if !ok {
		return apperrors.ErrProfileNotFound
	}
	profile.Verified = existing.Verified
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeHostRepo) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	r.calls++
	profile, ok := r.profiles[userID]
	if !ok {
		return apperrors.ErrProfileNotFound
	}
	profile.Verified = verified
	return nil
}

// fakeTxManager runs the callback directly without a database. The nil
// tx is safe because the fakes above ignore it.
type fakeTxManager struct {
	begun int
}

func (m *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	m.begun++
	return fn(ctx, nil)
}

// fakeEmailService records mail instead of sending it.
type fakeEmailService struct {
	verificationSent int
	resetSent        int
	welcomeSent      int
	lastToken        string
	lastRecipient    string
}

func (s *fakeEmailService) SendVerificationEmail(toEmail, toName, token string) error {
	s.verificationSent++
	s.lastRecipient = toEmail
	s.lastToken = token
	return nil
}

func (s *fakeEmailService) SendPasswordResetEmail(toEmail, toName, token string) error {
	s.resetSent++
	s.lastRecipient = toEmail
	s.lastToken = token
	return nil
}

func (s *fakeEmailService) SendWelcomeEmail(toEmail, toName string) error {
	s.welcomeSent++
	s.lastRecipient = toEmail
	return nil
}
