// Package errs defines the error shapes the API hands back to clients.
//
// Every failure that reaches the HTTP layer is turned into an HTTPError so
// clients always receive the same JSON body:
//
//	{ "code": "BAD_REQUEST", "error": "...", "status": 400 }
//
// with an optional "errors" list for field-level validation problems.
package errs
