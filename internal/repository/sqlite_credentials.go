package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hkhalid/butrack/internal/db"
	"github.com/hkhalid/butrack/internal/domain"
)

// There is exactly one local user, so the credentials row has a fixed key.
const credentialsRowID = "default"

// SQLiteCredentialRepo implements CredentialRepo using a SQLite database.
type SQLiteCredentialRepo struct {
	db db.DBTX
}

// NewSQLiteCredentialRepo creates a new SQLiteCredentialRepo.
func NewSQLiteCredentialRepo(conn db.DBTX) *SQLiteCredentialRepo {
	return &SQLiteCredentialRepo{db: conn}
}

func (r *SQLiteCredentialRepo) Get(ctx context.Context) (*domain.Credentials, error) {
	query := `SELECT enrollment, password, institute FROM credentials WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, credentialsRowID)

	var c domain.Credentials
	var institute string
	err := row.Scan(&c.Enrollment, &c.Password, &institute)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("credentials: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning credentials: %w", err)
	}
	c.Institute = domain.Institute(institute)
	return &c, nil
}

func (r *SQLiteCredentialRepo) Save(ctx context.Context, creds *domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	query := `INSERT OR REPLACE INTO credentials (id, enrollment, password, institute, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		credentialsRowID,
		creds.Enrollment,
		creds.Password,
		string(creds.Institute),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting credentials: %w", err)
	}
	return nil
}

func (r *SQLiteCredentialRepo) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, credentialsRowID)
	if err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}
