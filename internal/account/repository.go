package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists accounts. Code-consuming updates are guarded
// compare-and-set statements so concurrent workflow calls for the same
// account cannot clear a code they did not observe.
type Repository interface {
	Create(ctx context.Context, acc Account) error
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
	SetVerificationCode(ctx context.Context, id, code string, expiry time.Time) error
	// ConfirmEmail marks the account confirmed and clears the verification
	// pair, provided the stored code still equals the one being consumed.
	ConfirmEmail(ctx context.Context, id, code string) error
	SetResetCode(ctx context.Context, id, code string, expiry time.Time) error
	// ResetPassword replaces the hash and clears the reset pair in one
	// guarded update. On failure the stored code is left intact.
	ResetPassword(ctx context.Context, id, code string, newHash []byte) error
	SetLastLogin(ctx context.Context, id string, at time.Time) error
}

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account.
func (r *PostgresRepository) Create(ctx context.Context, acc Account) error {
	accountID, err := uuid.Parse(acc.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts
        (id, email, password_hash, email_confirmed, verification_code, verification_code_expiry, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		accountID, acc.Email, acc.PasswordHash, acc.EmailConfirmed,
		acc.VerificationCode, utcPtr(acc.VerificationCodeExpiry), acc.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	return err
}

// FindByEmail fetches an account by its case-insensitive email key.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	row := r.db.QueryRow(ctx, selectAccount+` WHERE LOWER(email) = LOWER($1)`, email)
	return scanAccount(row)
}

// FindByID fetches an account by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, selectAccount+` WHERE id = $1`, accountID)
	return scanAccount(row)
}

// SetVerificationCode overwrites the verification pair.
func (r *PostgresRepository) SetVerificationCode(ctx context.Context, id, code string, expiry time.Time) error {
	return r.update(ctx, `UPDATE accounts
        SET verification_code = $2, verification_code_expiry = $3 WHERE id = $1`,
		id, code, expiry.UTC())
}

// ConfirmEmail consumes a verification code.
func (r *PostgresRepository) ConfirmEmail(ctx context.Context, id, code string) error {
	return r.update(ctx, `UPDATE accounts
        SET email_confirmed = TRUE, verification_code = NULL, verification_code_expiry = NULL
        WHERE id = $1 AND verification_code = $2 AND NOT email_confirmed`,
		id, code)
}

// SetResetCode overwrites the reset pair.
func (r *PostgresRepository) SetResetCode(ctx context.Context, id, code string, expiry time.Time) error {
	return r.update(ctx, `UPDATE accounts
        SET reset_code = $2, reset_code_expiry = $3 WHERE id = $1`,
		id, code, expiry.UTC())
}

// ResetPassword consumes a reset code and installs the new hash.
func (r *PostgresRepository) ResetPassword(ctx context.Context, id, code string, newHash []byte) error {
	return r.update(ctx, `UPDATE accounts
        SET password_hash = $3, reset_code = NULL, reset_code_expiry = NULL
        WHERE id = $1 AND reset_code = $2`,
		id, code, newHash)
}

// SetLastLogin stamps a successful login.
func (r *PostgresRepository) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, `UPDATE accounts SET last_login_at = $2 WHERE id = $1`, id, at.UTC())
}

func (r *PostgresRepository) update(ctx context.Context, query, id string, args ...any) error {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, query, append([]any{accountID}, args...)...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const selectAccount = `SELECT id, email, password_hash, email_confirmed,
    verification_code, verification_code_expiry, reset_code, reset_code_expiry,
    last_login_at, created_at FROM accounts`

func scanAccount(row pgx.Row) (Account, error) {
	var (
		id  uuid.UUID
		acc Account
	)
	err := row.Scan(&id, &acc.Email, &acc.PasswordHash, &acc.EmailConfirmed,
		&acc.VerificationCode, &acc.VerificationCodeExpiry,
		&acc.ResetCode, &acc.ResetCodeExpiry,
		&acc.LastLoginAt, &acc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	acc.ID = id.String()
	return acc, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
