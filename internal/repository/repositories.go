package repository

import (
	"github.com/deppfellow/phonebook/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Person *PersonRepository
}

// NewRepositories builds every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Person: NewPersonRepository(s),
	}
}
