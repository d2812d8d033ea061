// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate request bodies through the validation package,
// call the matching service, and leave error rendering to the global error handler.
package handler
