package handler

import (
	"net/http"

	"github.com/deppfellow/phonebook/internal/model"
	"github.com/deppfellow/phonebook/internal/server"
	"github.com/deppfellow/phonebook/internal/service"
	"github.com/labstack/echo/v4"
)

type PersonHandler struct {
	Handler
	personService *service.PersonService
}

func NewPersonHandler(s *server.Server, personService *service.PersonService) *PersonHandler {
	return &PersonHandler{
		Handler:       NewHandler(s),
		personService: personService,
	}
}

func (h *PersonHandler) ListPersons(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, query *model.ListPersonsQuery) ([]model.Person, error) {
			return h.personService.ListPersons(c)
		},
		http.StatusOK,
	)(c)
}

func (h *PersonHandler) GetPerson(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, param *model.PersonIDParam) (*model.Person, error) {
			return h.personService.GetPerson(c, param.ID)
		},
		http.StatusOK,
	)(c)
}

// CreatePerson answers 200 with the stored person, matching the frontend
// this API was built for.
func (h *PersonHandler) CreatePerson(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.CreatePersonPayload) (*model.Person, error) {
			return h.personService.CreatePerson(c, payload)
		},
		http.StatusOK,
	)(c)
}

func (h *PersonHandler) UpdatePerson(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.UpdatePersonPayload) (*model.Person, error) {
			return h.personService.UpdatePerson(c, payload)
		},
		http.StatusOK,
	)(c)
}

func (h *PersonHandler) DeletePerson(c echo.Context) error {
	return HandleNoContent(
		h.Handler,
		func(c echo.Context, param *model.PersonIDParam) error {
			return h.personService.DeletePerson(c, param.ID)
		},
		http.StatusNoContent,
	)(c)
}
