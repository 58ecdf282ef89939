package testdata

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jask/coltable/internal/database/repository"
)

var (
	firstNames = []string{"Ann", "Bob", "Carla", "Dev", "Eun-ji", "Farid", "Greta", "Hugo", "Iris", "Jonas", "Kemal", "Lena"}
	lastNames  = []string{"Lee", "Ray", "Okafor", "Novak", "Silva", "Tanaka", "Weber", "Costa", "Berg", "Ivanova"}
	domains    = []string{"example.com", "example.org", "mail.test"}
)

// Seed inserts n generated people. Emails carry a counter so rows never
// collide with each other; collisions with existing rows are skipped. It
// returns how many people were inserted.
func Seed(ctx context.Context, repo *repository.PersonRepo, n int, rng *rand.Rand) (int, error) {
	inserted := 0
	for i := 0; i < n; i++ {
		p := Person(rng, i)
		if err := repo.Insert(ctx, p); err != nil {
			if errors.Is(err, repository.ErrDuplicatePerson) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// Person generates the i-th sample person.
func Person(rng *rand.Rand, i int) repository.Person {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	email := fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i, domains[rng.Intn(len(domains))])
	return repository.Person{
		ID:        repository.PersonID(email),
		FirstName: first,
		LastName:  last,
		Age:       18 + rng.Intn(60),
		Email:     email,
	}
}
