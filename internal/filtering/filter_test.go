package filtering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/coltable/internal/columns"
)

type person struct {
	Name string
	Age  int
	City string
}

func field(f func(person) any) columns.Accessor {
	return func(rec columns.Record) any { return f(rec.(person)) }
}

func testColumns() []Column {
	return []Column{
		{Descriptor: columns.Descriptor{ID: "name", Accessor: field(func(p person) any { return p.Name })}, Visible: true},
		{Descriptor: columns.Descriptor{ID: "age", Accessor: field(func(p person) any { return p.Age })}, Visible: true},
		{Descriptor: columns.Descriptor{ID: "city", Accessor: field(func(p person) any { return p.City })}, Visible: true},
	}
}

func hide(cols []Column, id string) []Column {
	out := make([]Column, len(cols))
	copy(out, cols)
	for i := range out {
		if out[i].ID == id {
			out[i].Visible = false
		}
	}
	return out
}

func visibleRows(rows []person, cols []Column, st State, p Policy) []person {
	var out []person
	for _, r := range rows {
		if RowVisible(r, cols, st, p) {
			out = append(out, r)
		}
	}
	return out
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"Ann", "Ann"},
		{30, "30"},
		{int64(-7), "-7"},
		{30.5, "30.5"},
		{true, "true"},
		{[]byte("raw"), "raw"},
		{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "2024-01-02 00:00:00 +0000 UTC"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Stringify(tc.in), "Stringify(%#v)", tc.in)
	}
}

func TestMatches(t *testing.T) {
	name := field(func(p person) any { return p.Name })
	age := field(func(p person) any { return p.Age })
	ann := person{Name: "Ann Lee", Age: 30}

	require.True(t, Matches(ann, name, ""))
	require.True(t, Matches(ann, name, "ann"))
	require.True(t, Matches(ann, name, "N L"))
	require.False(t, Matches(ann, name, "bob"))
	require.True(t, Matches(ann, age, "3"))
	require.True(t, Matches(ann, age, "30"))
	require.False(t, Matches(ann, age, "31"))
	require.False(t, Matches(ann, nil, "x"))
	require.True(t, Matches(person{Name: "ÅSA"}, name, "åsa"), "case folding")
}

func TestGlobalAndColumnFiltersCompose(t *testing.T) {
	rows := []person{{Name: "Ann", Age: 30}, {Name: "Bob", Age: 31}}
	cols := testColumns()

	st := State{PerColumn: map[string]string{"age": "30"}, Global: "bob"}
	require.Empty(t, visibleRows(rows, cols, st, DefaultPolicy()))

	st = State{PerColumn: map[string]string{"age": "3"}, Global: "bob"}
	require.Equal(t, []person{{Name: "Bob", Age: 31}}, visibleRows(rows, cols, st, DefaultPolicy()))

	st = State{PerColumn: map[string]string{"name": "", "age": "3"}}
	require.Len(t, visibleRows(rows, cols, st, DefaultPolicy()), 2)

	require.Len(t, visibleRows(rows, cols, State{}, DefaultPolicy()), 2)
}

func TestHiddenColumnPolicy(t *testing.T) {
	rows := []person{{Name: "Ann", City: "Oslo"}, {Name: "Bob", City: "Rome"}}
	cols := hide(testColumns(), "city")

	// hidden data does not satisfy the global search by default
	st := State{Global: "oslo"}
	require.Empty(t, visibleRows(rows, cols, st, DefaultPolicy()))
	require.Len(t, visibleRows(rows, cols, st, Policy{FilterHiddenColumns: true, SearchHiddenColumns: true}), 1)

	// but a hidden column keeps its own filter
	st = State{PerColumn: map[string]string{"city": "rome"}}
	require.Equal(t, []person{{Name: "Bob", City: "Rome"}}, visibleRows(rows, cols, st, DefaultPolicy()))
	require.Len(t, visibleRows(rows, cols, st, Policy{}), 2)
}

func TestGlobalSearchWithEveryColumnHidden(t *testing.T) {
	cols := hide(hide(hide(testColumns(), "name"), "age"), "city")
	require.False(t, RowVisible(person{Name: "Ann"}, cols, State{Global: "a"}, DefaultPolicy()))
	require.True(t, RowVisible(person{Name: "Ann"}, cols, State{}, DefaultPolicy()))
}

func TestBuildDescription(t *testing.T) {
	cols := testColumns()
	require.Equal(t, "all", Build(cols, State{}, DefaultPolicy()).Description())
	require.Equal(t, `age~"30"`, Build(cols, State{PerColumn: map[string]string{"age": "30"}}, DefaultPolicy()).Description())

	st := State{PerColumn: map[string]string{"age": "30"}, Global: "bob"}
	require.Equal(t, `(age~"30" AND *~"bob")`, Build(cols, st, DefaultPolicy()).Description())
}

func TestStateActive(t *testing.T) {
	require.False(t, State{}.Active())
	require.False(t, State{PerColumn: map[string]string{"a": ""}}.Active())
	require.True(t, State{PerColumn: map[string]string{"a": "x"}}.Active())
	require.True(t, State{Global: "x"}.Active())
}

func TestCompositeEmpty(t *testing.T) {
	require.True(t, Composite{Logic: LogicAND}.Match(person{}))
	require.False(t, Composite{Logic: LogicOR}.Match(person{}))
	require.Equal(t, "OR", LogicOR.String())
	require.Equal(t, "unknown(7)", LogicOp(7).String())
}
