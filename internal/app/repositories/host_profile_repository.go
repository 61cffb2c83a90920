package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjn/careermatch/internal/app/models"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
	"github.com/arjn/careermatch/internal/pkg/dberrors"
)

// IHostProfileRepository defines database operations for host profiles
type IHostProfileRepository interface {
	InsertTx(ctx context.Context, tx pgx.Tx, profile *models.HostProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.HostProfile, error)
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	ExistsByUserIDTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (bool, error)
	Update(ctx context.Context, profile *models.HostProfile) error
	SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error
}

// HostProfileRepository handles host profile database operations
type HostProfileRepository struct {
	db *pgxpool.Pool
}

// NewHostProfileRepository creates a new HostProfileRepository
func NewHostProfileRepository(db *pgxpool.Pool) *HostProfileRepository {
	return &HostProfileRepository{db: db}
}

const hostProfileColumns = `user_id, name, email, phone, address, logo_url, bio, verified, created_at, updated_at`

func scanHostProfile(row pgx.Row) (*models.HostProfile, error) {
	p := &models.HostProfile{}
	err := row.Scan(
		&p.UserID, &p.Name, &p.Email, &p.Phone, &p.Address, &p.LogoURL, &p.Bio,
		&p.Verified, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error scanning host profile: %w", err)
	}
	return p, nil
}

// InsertTx inserts a profile within a caller-owned transaction
func (r *HostProfileRepository) InsertTx(ctx context.Context, tx pgx.Tx, profile *models.HostProfile) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO host_profiles (user_id, name, email, phone, address, bio, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		profile.UserID, profile.Name, profile.Email, profile.Phone, profile.Address,
		profile.Bio, profile.Verified).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateError(err) {
			return apperrors.ErrProfileAlreadyExists
		}
		return fmt.Errorf("error creating host profile: %w", err)
	}
	return nil
}

// GetByUserID retrieves a profile by owning account id
func (r *HostProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.HostProfile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+hostProfileColumns+` FROM host_profiles WHERE user_id = $1`, userID)
	return scanHostProfile(row)
}

// ExistsByUserID checks whether a profile row exists for the account
func (r *HostProfileRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	return hostProfileExists(ctx, r.db, userID)
}

// ExistsByUserIDTx checks existence within a caller-owned transaction
func (r *HostProfileRepository) ExistsByUserIDTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (bool, error) {
	return hostProfileExists(ctx, tx, userID)
}

func hostProfileExists(ctx context.Context, q DBTX, userID uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM host_profiles WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking host profile: %w", err)
	}
	return exists, nil
}

// Update replaces the mutable profile fields; verified is excluded
func (r *HostProfileRepository) Update(ctx context.Context, profile *models.HostProfile) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE host_profiles SET
			name = $1, email = $2, phone = $3, address = $4, bio = $5, updated_at = NOW()
		WHERE user_id = $6`,
		profile.Name, profile.Email, profile.Phone, profile.Address, profile.Bio, profile.UserID)
	if err != nil {
		return fmt.Errorf("error updating host profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// SetVerified flips the verification flag, admin action only
func (r *HostProfileRepository) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE host_profiles SET verified = $1, updated_at = NOW() WHERE user_id = $2`,
		verified, userID)
	if err != nil {
		return fmt.Errorf("error updating host verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}
