// Package repositories contains the database access layer
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx.
// Repository methods that must run inside a caller-owned transaction accept
// it explicitly.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxManager runs a function within a database transaction.
// *db.PostgresDB satisfies it.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// Repositories combines all application repositories
type Repositories struct {
	UserRepository           *UserRepository
	StudentProfileRepository *StudentProfileRepository
	HostProfileRepository    *HostProfileRepository
	TokenRepository          *TokenRepository
	VerificationTokenRepo    *VerificationTokenRepository
	PasswordResetTokenRepo   *PasswordResetTokenRepository
}

// NewRepositories creates the repository container
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		StudentProfileRepository: NewStudentProfileRepository(db),
		HostProfileRepository:    NewHostProfileRepository(db),
		TokenRepository:          NewTokenRepository(db),
		VerificationTokenRepo:    NewVerificationTokenRepository(db),
		PasswordResetTokenRepo:   NewPasswordResetTokenRepository(db),
	}
}
