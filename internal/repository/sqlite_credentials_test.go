package repository

import (
	"context"
	"testing"

	"github.com/hkhalid/butrack/internal/domain"
	"github.com/hkhalid/butrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() *domain.Credentials {
	return &domain.Credentials{
		Enrollment: "01-135212-042",
		Password:   "hunter2",
		Institute:  domain.InstituteKarachi,
	}
}

func TestCredentialRepo_Get_FirstRun(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCredentialRepo(db)

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialRepo_SaveAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCredentialRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testCreds()))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "01-135212-042", got.Enrollment)
	assert.Equal(t, "hunter2", got.Password)
	assert.Equal(t, domain.InstituteKarachi, got.Institute)
}

func TestCredentialRepo_Save_ReplacesPrevious(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCredentialRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testCreds()))

	updated := testCreds()
	updated.Password = "new-password"
	updated.Institute = domain.InstituteLahore
	require.NoError(t, repo.Save(ctx, updated))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-password", got.Password)
	assert.Equal(t, domain.InstituteLahore, got.Institute)
}

func TestCredentialRepo_Save_RejectsInvalid(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCredentialRepo(db)

	err := repo.Save(context.Background(), &domain.Credentials{Enrollment: "x"})
	assert.Error(t, err)
}

func TestCredentialRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCredentialRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testCreds()))
	require.NoError(t, repo.Delete(ctx))

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
