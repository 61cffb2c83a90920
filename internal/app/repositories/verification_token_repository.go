package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjn/careermatch/internal/pkg/apperrors"
)

// IVerificationTokenRepository defines database operations for email verification tokens
type IVerificationTokenRepository interface {
	CreateToken(ctx context.Context, userID uuid.UUID, token string, expiryDate time.Time) error
	CreateTokenTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, token string, expiryDate time.Time) error
	GetTokenInfo(ctx context.Context, token string) (uuid.UUID, time.Time, error)
	DeleteToken(ctx context.Context, token string) error
	DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredTokens(ctx context.Context) error
}

// VerificationTokenRepository handles database operations for email verification tokens
type VerificationTokenRepository struct {
	db *pgxpool.Pool
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository(db *pgxpool.Pool) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

// CreateToken creates a new email verification token for a user
func (r *VerificationTokenRepository) CreateToken(ctx context.Context, userID uuid.UUID, token string, expiryDate time.Time) error {
	return createVerificationToken(ctx, r.db, userID, token, expiryDate)
}

// CreateTokenTx creates a verification token within a caller-owned transaction,
// so that a failed insert rolls back the account row it belongs to
func (r *VerificationTokenRepository) CreateTokenTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, token string, expiryDate time.Time) error {
	return createVerificationToken(ctx, tx, userID, token, expiryDate)
}

func createVerificationToken(ctx context.Context, q DBTX, userID uuid.UUID, token string, expiryDate time.Time) error {
	query := squirrel.Insert("email_verification_tokens").
		Columns("user_id", "token", "expiry_date").
		Values(userID, token, expiryDate).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating verification token: %w", err)
	}
	return nil
}

// GetTokenInfo retrieves token information by token value
func (r *VerificationTokenRepository) GetTokenInfo(ctx context.Context, token string) (uuid.UUID, time.Time, error) {
	query := squirrel.Select("user_id", "expiry_date").
		From("email_verification_tokens").
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("error building SQL: %w", err)
	}

	var userID uuid.UUID
	var expiryDate time.Time

	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID, &expiryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, time.Time{}, apperrors.ErrInvalidEmailToken
		}
		return uuid.Nil, time.Time{}, fmt.Errorf("error getting token info: %w", err)
	}

	return userID, expiryDate, nil
}

// DeleteToken deletes a verification token
func (r *VerificationTokenRepository) DeleteToken(ctx context.Context, token string) error {
	query := squirrel.Delete("email_verification_tokens").
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting token: %w", err)
	}
	return nil
}

// DeleteTokensByUserID deletes all tokens for a specific user
func (r *VerificationTokenRepository) DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	query := squirrel.Delete("email_verification_tokens").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting tokens for user: %w", err)
	}
	return nil
}

// DeleteExpiredTokens deletes all expired tokens
func (r *VerificationTokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	query := squirrel.Delete("email_verification_tokens").
		Where("expiry_date < ?", time.Now()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting expired tokens: %w", err)
	}
	return nil
}
