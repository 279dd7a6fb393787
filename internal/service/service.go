// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// payloads from handlers, enforces business rules such as name uniqueness,
// and calls repositories to read or persist data.
package service
