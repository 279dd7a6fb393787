// Package middleware holds the cross-cutting HTTP concerns: request ids,
// request-scoped logging, request/body logging, CORS, secure headers,
// APM tracing, metrics, panic recovery and the global error handler that
// turns every returned error into a JSON response.
package middleware
