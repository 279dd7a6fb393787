package handler

import (
	"github.com/deppfellow/phonebook/internal/server"
	"github.com/deppfellow/phonebook/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Person  *PersonHandler
	Info    *InfoHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Static  *StaticHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Person:  NewPersonHandler(s, services.Person),
		Info:    NewInfoHandler(s, services.Person),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Static:  NewStaticHandler(s),
	}
}
