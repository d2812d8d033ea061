// Package middleware holds the Echo middleware shared by every route:
// request ids, the request-scoped logger, New Relic tracing, Prometheus request
// metrics, request logging, CORS, panic recovery and the global error handler.
package middleware
