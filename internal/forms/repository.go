package forms

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists form entries.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
}

// PostgresRepository stores form entries in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an entry and fills in its generated id.
func (r *PostgresRepository) Create(ctx context.Context, entry *Entry) error {
	userID, err := uuid.Parse(entry.UserID)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx, `INSERT INTO form_entries (text1, num1, date1, user_id, created_at)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		entry.Text1, entry.Num1, entry.Date1.UTC(), userID, entry.CreatedAt.UTC())
	return row.Scan(&entry.ID)
}

// ListByUser fetches a user's entries, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, text1, num1, date1, user_id, created_at
        FROM form_entries WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			owner     uuid.UUID
			date      time.Time
			createdAt time.Time
		)
		if err := rows.Scan(&e.ID, &e.Text1, &e.Num1, &date, &owner, &createdAt); err != nil {
			return nil, err
		}
		e.UserID = owner.String()
		e.Date1 = date.UTC()
		e.CreatedAt = createdAt.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
