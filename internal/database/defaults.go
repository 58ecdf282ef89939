package database

import (
	"context"
	"database/sql"

	"github.com/jask/coltable/internal/database/repository"
)

// DefaultPeople are the rows a new database starts with.
var DefaultPeople = []repository.Person{
	{FirstName: "Tanner", LastName: "Linsley", Age: 33, Email: "tanner@example.com"},
	{FirstName: "Kevin", LastName: "Vandy", Age: 27, Email: "kevin@example.com"},
	{FirstName: "John", LastName: "Doe", Age: 45, Email: "john@example.com"},
	{FirstName: "Jane", LastName: "Smith", Age: 30, Email: "jane@example.com"},
	{FirstName: "Ann", LastName: "Lee", Age: 31, Email: "ann@example.com"},
}

// SeedDefaults inserts DefaultPeople into an empty people table.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewPersonRepo(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, p := range DefaultPeople {
			p.ID = repository.PersonID(p.Email)
			if err := repository.InsertPersonTx(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}
