package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/coltable/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(dbPath, ""))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrationsFromDirectoryAndRerun(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	dir, err := filepath.Abs("migrations")
	require.NoError(t, err)

	require.NoError(t, RunMigrations(dbPath, dir))
	require.NoError(t, RunMigrations(dbPath, ""), "already applied migrations are a no-op")
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t)

	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))

	repo := repository.NewPersonRepo(db)
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, len(DefaultPeople), n)

	people, err := repo.List(ctx, repository.PersonFilters{})
	require.NoError(t, err)
	require.Equal(t, "Tanner", people[0].FirstName)
	require.Equal(t, repository.PersonID("tanner@example.com"), people[0].ID)
	require.False(t, people[0].CreatedAt.IsZero())
}

func TestPersonRepo(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := repository.NewPersonRepo(openTestDB(t))

	ann := repository.Person{ID: repository.PersonID("ann@example.com"), FirstName: "Ann", LastName: "Lee", Age: 30, Email: "ann@example.com"}
	require.NoError(t, repo.Insert(ctx, ann))
	require.ErrorIs(t, repo.Insert(ctx, ann), repository.ErrDuplicatePerson)

	ann.Age = 31
	require.NoError(t, repo.Upsert(ctx, ann))
	bob := repository.Person{ID: repository.PersonID("bob@example.com"), FirstName: "Bob", LastName: "Ray", Age: 40, Email: "bob@example.com"}
	require.NoError(t, repo.Upsert(ctx, bob))

	people, err := repo.List(ctx, repository.PersonFilters{})
	require.NoError(t, err)
	require.Len(t, people, 2)
	require.Equal(t, 31, people[0].Age)

	people, err = repo.List(ctx, repository.PersonFilters{Limit: 1})
	require.NoError(t, err)
	require.Len(t, people, 1)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestPersonIDIsStable(t *testing.T) {
	require.Equal(t, repository.PersonID("Ann@Example.com "), repository.PersonID("ann@example.com"))
	require.NotEqual(t, repository.PersonID("ann@example.com"), repository.PersonID("bob@example.com"))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)
	repo := repository.NewPersonRepo(db)

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		p := repository.Person{ID: repository.PersonID("zed@example.com"), FirstName: "Zed", Email: "zed@example.com"}
		require.NoError(t, repository.InsertPersonTx(ctx, tx, p))
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}
