package columns

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type person struct {
	Name string
	Age  int
}

func peopleRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(
		Descriptor{ID: "name", Label: "Name", Accessor: func(rec Record) any { return rec.(person).Name }},
		Descriptor{ID: "age", Accessor: func(rec Record) any { return rec.(person).Age }},
		Descriptor{ID: "email", Label: "Email", Accessor: func(Record) any { return nil }},
	)
	require.NoError(t, err)
	return r
}

func TestRegistryNaturalOrder(t *testing.T) {
	r := peopleRegistry(t)
	require.Equal(t, 3, r.Len())
	require.Equal(t, []string{"name", "age", "email"}, r.IDs())

	d, ok := r.Lookup("age")
	require.True(t, ok)
	require.Equal(t, "age", d.Label, "label defaults to the id")
	require.Equal(t, 30, d.Value(person{Name: "Ann", Age: 30}))

	_, ok = r.Lookup("missing")
	require.False(t, ok)
}

func TestRegistryValidation(t *testing.T) {
	acc := func(Record) any { return "" }

	_, err := NewRegistry(Descriptor{ID: "a", Accessor: acc}, Descriptor{ID: "a", Accessor: acc})
	require.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = NewRegistry(Descriptor{ID: " ", Accessor: acc})
	require.ErrorIs(t, err, ErrInvalidColumnReference)

	_, err = NewRegistry(Descriptor{ID: "a"})
	require.ErrorIs(t, err, ErrNoAccessor)
}

func TestRegistryCheckSuggests(t *testing.T) {
	r := peopleRegistry(t)
	require.NoError(t, r.Check("email"))

	err := r.Check("emial")
	require.ErrorIs(t, err, ErrInvalidColumnReference)
	require.Contains(t, err.Error(), `did you mean "email"`)

	err = r.Check("zzz")
	require.ErrorIs(t, err, ErrInvalidColumnReference)
	require.NotContains(t, err.Error(), "did you mean")
}

func TestRegistryAllIsACopy(t *testing.T) {
	r := peopleRegistry(t)
	all := r.All()
	all[0].ID = "changed"
	require.Equal(t, "name", r.IDs()[0])
}
