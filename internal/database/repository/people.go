package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrDuplicatePerson is returned when a person's id or email already exists.
var ErrDuplicatePerson = errors.New("person already exists")

// PersonFilters defines list filters.
type PersonFilters struct {
	Limit int // zero = no limit
}

// PersonID derives a stable id from an email address.
func PersonID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("person:"+strings.ToLower(strings.TrimSpace(email)))).String()
}

// PersonRepo handles people.
type PersonRepo struct {
	db *sql.DB
}

func NewPersonRepo(db *sql.DB) *PersonRepo { return &PersonRepo{db: db} }

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const insertPerson = `
	INSERT INTO people(id, first_name, last_name, age, email, created_at)
	VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP);`

func insert(ctx context.Context, ex execer, p Person) error {
	_, err := ex.ExecContext(ctx, insertPerson, p.ID, p.FirstName, p.LastName, p.Age, p.Email)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return errors.Join(ErrDuplicatePerson, err)
	}
	return err
}

// Insert adds p. It fails with ErrDuplicatePerson if the id or email exists.
func (r *PersonRepo) Insert(ctx context.Context, p Person) error {
	return insert(ctx, r.db, p)
}

// InsertPersonTx is Insert inside an open transaction.
func InsertPersonTx(ctx context.Context, tx *sql.Tx, p Person) error {
	return insert(ctx, tx, p)
}

// Upsert inserts p or overwrites the person with the same id.
func (r *PersonRepo) Upsert(ctx context.Context, p Person) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO people(id, first_name, last_name, age, email, created_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 first_name=excluded.first_name,
	 last_name=excluded.last_name,
	 age=excluded.age,
	 email=excluded.email;
	`, p.ID, p.FirstName, p.LastName, p.Age, p.Email)
	return err
}

// List returns people in insertion order.
func (r *PersonRepo) List(ctx context.Context, f PersonFilters) ([]Person, error) {
	query := "SELECT id, first_name, last_name, age, email, created_at FROM people ORDER BY rowid"
	var args []any
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Age, &p.Email, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PersonRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&n)
	return n, err
}

// DeleteAll removes every person and returns how many were removed.
func (r *PersonRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM people`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
