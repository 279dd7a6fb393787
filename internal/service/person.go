package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/phonebook/internal/errs"
	"github.com/deppfellow/phonebook/internal/middleware"
	"github.com/deppfellow/phonebook/internal/model"
	"github.com/deppfellow/phonebook/internal/server"
	"github.com/deppfellow/phonebook/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

// DuplicateNameMessage is returned when a name is already taken.
const DuplicateNameMessage = "that name is already in the phonebook"

// personNameConstraint is the unique constraint on persons.name.
const personNameConstraint = "persons_name_key"

// PersonStore is the storage PersonService needs.
type PersonStore interface {
	List(ctx context.Context) ([]model.Person, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*model.Person, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, payload *model.CreatePersonPayload) (*model.Person, error)
	Update(ctx context.Context, payload *model.UpdatePersonPayload) (*model.Person, error)
	Delete(ctx context.Context, id string) error
}

type PersonService struct {
	server *server.Server
	store  PersonStore

	// now is swapped in tests.
	now func() time.Time
}

func NewPersonService(s *server.Server, store PersonStore) *PersonService {
	return &PersonService{
		server: s,
		store:  store,
		now:    time.Now,
	}
}

func duplicateNameError() *errs.HTTPError {
	code := "PERSON_ALREADY_EXISTS"
	return errs.NewBadRequestError(DuplicateNameMessage, true, &code, nil)
}

// translateNameConflict turns a violation of the name constraint into the
// same error the up-front check produces.
func translateNameConflict(err error) error {
	if sqlerr.ErrCode(err) == sqlerr.UniqueViolation && sqlerr.ConstraintName(err) == personNameConstraint {
		return duplicateNameError()
	}
	return err
}

func (s *PersonService) ListPersons(c echo.Context) ([]model.Person, error) {
	persons, err := s.store.List(c.Request().Context())
	if err != nil {
		return nil, err
	}

	// Always an array on the wire, never null.
	if persons == nil {
		persons = []model.Person{}
	}

	return persons, nil
}

func (s *PersonService) GetPerson(c echo.Context, id string) (*model.Person, error) {
	return s.store.GetByID(c.Request().Context(), id)
}

// Info renders the HTML fragment of the info page.
func (s *PersonService) Info(c echo.Context) (string, error) {
	count, err := s.store.Count(c.Request().Context())
	if err != nil {
		return "", err
	}

	date := s.now().Format("Mon Jan 02 2006 15:04:05 GMT-0700 (MST)")

	return fmt.Sprintf("<p>PhoneBook has info for %d people</p><p>%s</p>", count, date), nil
}

// CreatePerson adds a person whose name is not yet in the phonebook.
//
// The name check runs before the insert; the unique constraint covers the
// window between the two and is reported the same way.
func (s *PersonService) CreatePerson(c echo.Context, payload *model.CreatePersonPayload) (*model.Person, error) {
	ctx := c.Request().Context()

	exists, err := s.store.ExistsByName(ctx, payload.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateNameError()
	}

	person, err := s.store.Create(ctx, payload)
	if err != nil {
		return nil, translateNameConflict(err)
	}

	middleware.GetLogger(c).Info().
		Str("event", "person_created").
		Str("person_id", person.ID.String()).
		Msg("person created")

	return person, nil
}

func (s *PersonService) UpdatePerson(c echo.Context, payload *model.UpdatePersonPayload) (*model.Person, error) {
	person, err := s.store.Update(c.Request().Context(), payload)
	if err != nil {
		return nil, translateNameConflict(err)
	}

	middleware.GetLogger(c).Info().
		Str("event", "person_updated").
		Str("person_id", person.ID.String()).
		Msg("person updated")

	return person, nil
}

func (s *PersonService) DeletePerson(c echo.Context, id string) error {
	if err := s.store.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	middleware.GetLogger(c).Info().
		Str("event", "person_deleted").
		Str("person_id", id).
		Msg("person deleted")

	return nil
}
