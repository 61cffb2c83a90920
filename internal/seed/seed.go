// Package seed creates the demo accounts used in local development.
package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/arjn/careermatch/internal/app/models"
	appRepos "github.com/arjn/careermatch/internal/app/repositories"
	"github.com/arjn/careermatch/internal/db"
	"github.com/arjn/careermatch/internal/pkg/apperrors"
	"github.com/arjn/careermatch/internal/pkg/auth"
)

const demoPassword = "12345678"

func strPtr(s string) *string { return &s }

// CreateDemoData creates one pre-verified account per role plus the
// matching profiles. Existing rows are treated as a no-op so the seed can
// run on every startup.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, database *db.PostgresDB, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating demo accounts...")

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	var finalErr error

	studentID, err := seedUser(ctx, database, repos, &appModels.User{
		Email:         "student@test.com",
		Username:      "demo-student",
		Password:      hashed,
		Role:          appModels.RoleStudent,
		EmailVerified: true,
	}, lgr)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if studentID != nil {
		profile := &appModels.StudentProfile{
			UserID:     *studentID,
			Name:       "Demo Student",
			University: "Demo University",
			College:    "College of Engineering",
			Degree:     "B.Tech",
			Branch:     "Computer Science",
			Year:       3,
			CGPA:       8.5,
			Consent:    true,
			Bio:        strPtr("Demo student account for local development."),
			Skills:     []string{"Go", "SQL", "Docker"},
		}
		err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return repos.StudentProfileRepository.InsertTx(ctx, tx, profile)
		})
		if err != nil && !errors.Is(err, apperrors.ErrProfileAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating demo student profile")
			finalErr = errors.Join(finalErr, err)
		}
	}

	hostID, err := seedUser(ctx, database, repos, &appModels.User{
		Email:         "host@test.com",
		Username:      "demo-host",
		Password:      hashed,
		Role:          appModels.RoleHost,
		EmailVerified: true,
	}, lgr)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if hostID != nil {
		profile := &appModels.HostProfile{
			UserID:  *hostID,
			Name:    "Demo Host Org",
			Email:   "host@test.com",
			Phone:   strPtr("+1-555-0100"),
			Address: strPtr("1 Demo Street"),
			Bio:     strPtr("Demo host organization for local development."),
		}
		err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return repos.HostProfileRepository.InsertTx(ctx, tx, profile)
		})
		if err != nil && !errors.Is(err, apperrors.ErrProfileAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating demo host profile")
			finalErr = errors.Join(finalErr, err)
		}
	}

	_, err = seedUser(ctx, database, repos, &appModels.User{
		Email:         "admin@test.com",
		Username:      "demo-admin",
		Password:      hashed,
		Role:          appModels.RoleAdmin,
		EmailVerified: true,
	}, lgr)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo accounts ready")
	}
	return finalErr
}

// seedUser creates an account, treating typed AlreadyExists errors as
// success. Returns the account id whether the row was inserted now or
// already present.
func seedUser(ctx context.Context, database *db.PostgresDB, repos *appRepos.Repositories, user *appModels.User, lgr zerolog.Logger) (*uuid.UUID, error) {
	err := repos.UserRepository.Create(ctx, user)
	if err == nil {
		lgr.Info().Str("email", user.Email).Msg("Demo account created")
		return &user.ID, nil
	}

	if errors.Is(err, apperrors.ErrEmailAlreadyExists) || errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		existing, errGet := repos.UserRepository.GetByEmail(ctx, user.Email)
		if errGet != nil {
			lgr.Error().Err(errGet).Str("email", user.Email).Msg("Error loading existing demo account")
			return nil, errGet
		}
		return &existing.ID, nil
	}

	lgr.Error().Err(err).Str("email", user.Email).Msg("Error creating demo account")
	return nil, err
}
