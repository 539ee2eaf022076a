package repository

import (
	"context"
	"errors"

	"github.com/hkhalid/butrack/internal/domain"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

// CredentialRepo persists the single local user's portal login. The
// password is stored in plain text; anyone wanting stronger guarantees
// should encrypt the database file at rest.
type CredentialRepo interface {
	// Get returns the stored credentials, or ErrNotFound on first run.
	Get(ctx context.Context) (*domain.Credentials, error)
	// Save stores creds, replacing any previous record. Callers must
	// only save after the portal has accepted the credentials.
	Save(ctx context.Context, creds *domain.Credentials) error
	// Delete removes the stored credentials.
	Delete(ctx context.Context) error
}
