// Package validation binds request data and validates it.
//
// Payload types carry go-playground/validator tags and implement
// Validatable. Failures are converted into a 400 errs.HTTPError whose
// field errors the client can map back onto its form inputs.
package validation
