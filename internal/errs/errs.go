// Package errs defines the error types returned to API clients.
//
// Every caller-visible failure is an *HTTPError. Its JSON form is the small
// `{"error": "..."}` envelope the site's forms read, with an optional `details`
// block carrying field-level validation messages.
package errs
