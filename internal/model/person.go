package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Person is a phonebook entry. ID is assigned by the database and never changes.
type Person struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Name   string    `json:"name" db:"name"`
	Number string    `json:"number" db:"number"`
}

// ListPersonsQuery has no inputs; it exists so the list route runs through
// the same bind/validate pipeline as the others.
type ListPersonsQuery struct{}

func (q *ListPersonsQuery) Validate() error {
	return nil
}

// InfoQuery is the (empty) input of the info page.
type InfoQuery struct{}

func (q *InfoQuery) Validate() error {
	return nil
}

// PersonIDParam addresses a single person through the :id path segment.
//
// ID is kept as a string: whether it is a well-formed identifier is for the
// store to decide, so a bad value surfaces as a malformed-id error rather
// than a binding failure.
type PersonIDParam struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (p *PersonIDParam) Validate() error {
	return validate.Struct(p)
}

// CreatePersonPayload is the body of POST /api/persons.
type CreatePersonPayload struct {
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required"`
}

func (p *CreatePersonPayload) Validate() error {
	return validate.Struct(p)
}

// UpdatePersonPayload is PUT /api/persons/:id. Both fields are replaced wholesale.
type UpdatePersonPayload struct {
	ID     string `param:"id" json:"-" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required"`
}

func (p *UpdatePersonPayload) Validate() error {
	return validate.Struct(p)
}
