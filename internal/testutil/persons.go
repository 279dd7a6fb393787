package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/deppfellow/phonebook/internal/model"
	"github.com/deppfellow/phonebook/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PersonStore is an in-memory stand-in for the persons table. It keeps
// insertion order and reports failures with the same errors pgx and
// Postgres produce, so error translation can be tested end to end.
type PersonStore struct {
	mu      sync.Mutex
	persons []model.Person

	// Err, when set, is returned by every call.
	Err error
}

func NewPersonStore(seed ...model.Person) *PersonStore {
	s := &PersonStore{}
	s.persons = append(s.persons, seed...)
	return s
}

// Seed inserts persons with fresh ids and returns them as stored.
func (s *PersonStore) Seed(entries ...model.CreatePersonPayload) []model.Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Person, 0, len(entries))
	for _, e := range entries {
		p := model.Person{ID: uuid.New(), Name: e.Name, Number: e.Number}
		s.persons = append(s.persons, p)
		out = append(out, p)
	}
	return out
}

// Snapshot returns a copy of the stored persons.
func (s *PersonStore) Snapshot() []model.Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Person(nil), s.persons...)
}

func (s *PersonStore) List(ctx context.Context) ([]model.Person, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Snapshot(), nil
}

func (s *PersonStore) Count(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.persons)), nil
}

func (s *PersonStore) GetByID(ctx context.Context, id string) (*model.Person, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	personID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(personID)
	if i < 0 {
		return nil, notFound(id)
	}

	p := s.persons[i]
	return &p, nil
}

func (s *PersonStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.indexOfName(name) >= 0, nil
}

func (s *PersonStore) Create(ctx context.Context, payload *model.CreatePersonPayload) (*model.Person, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfName(payload.Name) >= 0 {
		return nil, uniqueNameViolation(payload.Name)
	}

	p := model.Person{ID: uuid.New(), Name: payload.Name, Number: payload.Number}
	s.persons = append(s.persons, p)

	return &p, nil
}

func (s *PersonStore) Update(ctx context.Context, payload *model.UpdatePersonPayload) (*model.Person, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	personID, err := parseID(payload.ID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(personID)
	if i < 0 {
		return nil, notFound(payload.ID)
	}

	if j := s.indexOfName(payload.Name); j >= 0 && j != i {
		return nil, uniqueNameViolation(payload.Name)
	}

	s.persons[i].Name = payload.Name
	s.persons[i].Number = payload.Number

	p := s.persons[i]
	return &p, nil
}

func (s *PersonStore) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}

	personID, err := parseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(personID)
	if i < 0 {
		return notFound(id)
	}

	s.persons = append(s.persons[:i], s.persons[i+1:]...)
	return nil
}

func (s *PersonStore) indexOf(id uuid.UUID) int {
	for i, p := range s.persons {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *PersonStore) indexOfName(name string) int {
	for i, p := range s.persons {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q: %v", sqlerr.ErrMalformedID, id, err)
	}
	return parsed, nil
}

func notFound(id string) error {
	return fmt.Errorf("failed to collect row from table:persons: id=%s: %w", id, pgx.ErrNoRows)
}

func uniqueNameViolation(name string) error {
	return fmt.Errorf("failed to collect row from table:persons: %w", &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "persons_name_key"`,
		Detail:         fmt.Sprintf("Key (name)=(%s) already exists.", name),
		TableName:      "persons",
		ConstraintName: "persons_name_key",
	})
}
