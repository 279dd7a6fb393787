package service

import (
	"github.com/deppfellow/phonebook/internal/repository"
	"github.com/deppfellow/phonebook/internal/server"
)

// Services groups every business service.
type Services struct {
	Person *PersonService
}

// NewServices wires services on top of the repositories.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Person: NewPersonService(s, repos.Person),
	}, nil
}
