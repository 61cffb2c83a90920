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

// IStudentProfileRepository defines database operations for student profiles
type IStudentProfileRepository interface {
	InsertTx(ctx context.Context, tx pgx.Tx, profile *models.StudentProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error)
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	ExistsByUserIDTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (bool, error)
	Update(ctx context.Context, profile *models.StudentProfile) error
}

// StudentProfileRepository handles student profile database operations
type StudentProfileRepository struct {
	db *pgxpool.Pool
}

// NewStudentProfileRepository creates a new StudentProfileRepository
func NewStudentProfileRepository(db *pgxpool.Pool) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

const studentProfileColumns = `user_id, name, university, college, degree, branch, year, cgpa,
	credits, bio, resume, resume_parsed, consent, twitter, github, linkedin, kaggle, skills,
	created_at, updated_at`

func scanStudentProfile(row pgx.Row) (*models.StudentProfile, error) {
	p := &models.StudentProfile{}
	err := row.Scan(
		&p.UserID, &p.Name, &p.University, &p.College, &p.Degree, &p.Branch, &p.Year, &p.CGPA,
		&p.Credits, &p.Bio, &p.Resume, &p.ResumeParsed, &p.Consent,
		&p.Twitter, &p.GitHub, &p.LinkedIn, &p.Kaggle, &p.Skills,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error scanning student profile: %w", err)
	}
	return p, nil
}

// InsertTx inserts a profile within a caller-owned transaction.
// The insert also enforces the one-profile-per-account invariant through
// the user_id primary key.
func (r *StudentProfileRepository) InsertTx(ctx context.Context, tx pgx.Tx, profile *models.StudentProfile) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO student_profiles
			(user_id, name, university, college, degree, branch, year, cgpa, credits,
			 bio, consent, twitter, github, linkedin, kaggle, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at`,
		profile.UserID, profile.Name, profile.University, profile.College, profile.Degree,
		profile.Branch, profile.Year, profile.CGPA, profile.Credits, profile.Bio,
		profile.Consent, profile.Twitter, profile.GitHub, profile.LinkedIn, profile.Kaggle,
		profile.Skills).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateError(err) {
			return apperrors.ErrProfileAlreadyExists
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}
	return nil
}

// GetByUserID retrieves a profile by owning account id
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentProfileColumns+` FROM student_profiles WHERE user_id = $1`, userID)
	return scanStudentProfile(row)
}

// ExistsByUserID checks whether a profile row exists for the account
func (r *StudentProfileRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	return studentProfileExists(ctx, r.db, userID)
}

// ExistsByUserIDTx checks existence within a caller-owned transaction
func (r *StudentProfileRepository) ExistsByUserIDTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (bool, error) {
	return studentProfileExists(ctx, tx, userID)
}

func studentProfileExists(ctx context.Context, q DBTX, userID uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM student_profiles WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student profile: %w", err)
	}
	return exists, nil
}

// Update replaces the mutable profile fields
func (r *StudentProfileRepository) Update(ctx context.Context, profile *models.StudentProfile) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE student_profiles SET
			name = $1, university = $2, college = $3, degree = $4, branch = $5,
			year = $6, cgpa = $7, bio = $8, twitter = $9, github = $10,
			linkedin = $11, kaggle = $12, skills = $13, updated_at = NOW()
		WHERE user_id = $14`,
		profile.Name, profile.University, profile.College, profile.Degree, profile.Branch,
		profile.Year, profile.CGPA, profile.Bio, profile.Twitter, profile.GitHub,
		profile.LinkedIn, profile.Kaggle, profile.Skills, profile.UserID)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}
