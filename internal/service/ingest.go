package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jask/coltable/internal/database/repository"
)

// IngestService handles people CSV imports.
type IngestService struct {
	People *repository.PersonRepo
	Log    *slog.Logger
	// Update overwrites people already present instead of skipping them.
	Update bool
}

type IngestResult struct {
	Imported int
	Updated  int
	Skipped  int
	Errors   []error
}

var peopleHeader = []string{"first_name", "last_name", "age", "email"}

// ImportCSV ingests rows of first_name, last_name, age, email. A leading
// header row is skipped. People are keyed by email, so re-importing a file
// skips rows already present unless Update is set.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	if s.People == nil {
		return res, fmt.Errorf("ingest: people repo not configured")
	}
	// spreadsheet exports often lead with a UTF-8 BOM
	bom := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	csvr := csv.NewReader(bufio.NewReader(transform.NewReader(r, bom)))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	first := true
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already names the line
			res.Errors = append(res.Errors, err)
			continue
		}
		line, _ := csvr.FieldPos(0)
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		p, err := parsePerson(rec)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if err := s.People.Insert(ctx, p); err != nil {
			if errors.Is(err, repository.ErrDuplicatePerson) {
				if !s.Update {
					res.Skipped++
					continue
				}
				if err := s.People.Upsert(ctx, p); err != nil {
					res.Errors = append(res.Errors, fmt.Errorf("line %d update: %w", line, err))
					continue
				}
				res.Updated++
				continue
			}
			res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
			continue
		}
		res.Imported++
	}
	if s.Log != nil {
		s.Log.Info("people import finished", "imported", res.Imported, "updated", res.Updated, "skipped", res.Skipped, "errors", len(res.Errors))
	}
	return res, nil
}

func isHeader(rec []string) bool {
	if len(rec) < len(peopleHeader) {
		return false
	}
	for i, h := range peopleHeader {
		if !strings.EqualFold(strings.TrimSpace(rec[i]), h) {
			return false
		}
	}
	return true
}

func parsePerson(rec []string) (repository.Person, error) {
	if len(rec) < len(peopleHeader) {
		return repository.Person{}, fmt.Errorf("expected %d columns (%s)", len(peopleHeader), strings.Join(peopleHeader, ", "))
	}
	first, last := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
	if first == "" && last == "" {
		return repository.Person{}, fmt.Errorf("name required")
	}
	age, err := strconv.Atoi(strings.TrimSpace(rec[2]))
	if err != nil || age < 0 {
		return repository.Person{}, fmt.Errorf("age: invalid value %q", rec[2])
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(rec[3]))
	if err != nil {
		return repository.Person{}, fmt.Errorf("email: %w", err)
	}
	email := strings.ToLower(addr.Address)
	return repository.Person{
		ID:        repository.PersonID(email),
		FirstName: first,
		LastName:  last,
		Age:       age,
		Email:     email,
	}, nil
}
