// Package service contains the business logic behind the two form endpoints.
//
// It receives validated payloads from the handler layer and drives the
// lead store, the notification email and the mailing list import.
package service
