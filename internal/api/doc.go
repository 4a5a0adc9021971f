// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package api exposes the query engine over HTTP with a chi router.

Endpoints:

	POST   /api/v1/query                  answer a free-text query
	GET    /api/v1/preferences/{userID}   show a profile
	POST   /api/v1/preferences/{userID}   merge favourite ingredients and cocktails
	DELETE /api/v1/preferences/{userID}   forget a profile
	GET    /api/v1/cocktails/{name}       cocktail detail (exact, then fuzzy)
	GET    /api/v1/health                 corpus, index and cache statistics
	GET    /api/v1/health/live            liveness probe
	GET    /api/v1/health/ready           readiness probe
	GET    /metrics                       Prometheus exposition

Every JSON body uses the APIResponse envelope. Query failures map to HTTP
status codes as follows:

	unclassified_query, invalid_argument  400
	not_found                             404
	no_preferences                        409
	internal_consistency                  500

Global middleware, in order: request ID with logging context, real IP,
panic recovery, CORS. The /api/v1 routes add per-IP rate limiting,
security headers, Prometheus instrumentation and slow request logging.
*/
package api
