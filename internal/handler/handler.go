// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate input through the validation package, call
// the service layer and write the response. Errors are returned as-is and
// rendered by the global error handler.
package handler
