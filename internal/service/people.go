package service

import (
	"context"
	"fmt"

	"github.com/jask/coltable/internal/columns"
	"github.com/jask/coltable/internal/database/repository"
	"github.com/jask/coltable/internal/table"
)

func personField(f func(repository.Person) any) columns.Accessor {
	return func(rec columns.Record) any {
		p, ok := rec.(repository.Person)
		if !ok {
			return nil
		}
		return f(p)
	}
}

// PeopleRegistry returns the columns shown for people.
func PeopleRegistry() *columns.Registry {
	reg, err := columns.NewRegistry(
		columns.Descriptor{ID: "id", Label: "ID", Accessor: personField(func(p repository.Person) any { return p.ID })},
		columns.Descriptor{ID: "firstName", Label: "First Name", Accessor: personField(func(p repository.Person) any { return p.FirstName })},
		columns.Descriptor{ID: "lastName", Label: "Last Name", Accessor: personField(func(p repository.Person) any { return p.LastName })},
		columns.Descriptor{ID: "age", Label: "Age", Accessor: personField(func(p repository.Person) any { return p.Age })},
		columns.Descriptor{ID: "email", Label: "Email", Accessor: personField(func(p repository.Person) any { return p.Email })},
	)
	if err != nil {
		// static descriptors
		panic(err)
	}
	return reg
}

// RowSource loads table rows from the people table.
type RowSource struct {
	People *repository.PersonRepo
}

// Load returns every person as a table row.
func (s *RowSource) Load(ctx context.Context) ([]table.Row, error) {
	if s.People == nil {
		return nil, fmt.Errorf("row source: people repo not configured")
	}
	people, err := s.People.List(ctx, repository.PersonFilters{})
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	rows := make([]table.Row, len(people))
	for i, p := range people {
		rows[i] = table.Row{ID: p.ID, Record: p}
	}
	return rows, nil
}
