// Package http provides the storefront JSON API over HTTP.
//
// # Endpoints
//
// All resources live under /api and exchange JSON. Failures are reported as
//
//	{"message": "<human readable text>"}
//
// with a status code from the usual taxonomy: 400 validation, 401 missing or
// bad credentials, 403 non-admin on an admin route, 404 not found, 409
// conflict, 500 anything else.
//
// # Authentication
//
// Authenticated routes expect
//
//	Authorization: Bearer <token>
//
// where the token is the one returned by login, registration or a profile
// update.
//
// # Caching
//
// Catalogue reads carry an ETag derived from the response body. A request
// whose If-None-Match matches receives 304 Not Modified with no body.
//
// # Middleware Chain
//
// Requests pass through, outermost first:
//
//  1. MetricsMiddleware - request count and duration per resource
//  2. RequestIDMiddleware - X-Request-ID and a request logger with the client IP
//  3. route-level requireAuth / requireAdmin
package http
