package handler

import (
	"net/http"

	"github.com/deppfellow/phonebook/internal/model"
	"github.com/deppfellow/phonebook/internal/server"
	"github.com/deppfellow/phonebook/internal/service"
	"github.com/labstack/echo/v4"
)

// InfoHandler serves the human-readable summary page.
type InfoHandler struct {
	Handler
	personService *service.PersonService
}

func NewInfoHandler(s *server.Server, personService *service.PersonService) *InfoHandler {
	return &InfoHandler{
		Handler:       NewHandler(s),
		personService: personService,
	}
}

func (h *InfoHandler) GetInfo(c echo.Context) error {
	return HandleHTML(
		h.Handler,
		func(c echo.Context, query *model.InfoQuery) (string, error) {
			return h.personService.Info(c)
		},
		http.StatusOK,
	)(c)
}
