// Package server exposes the build session and gallery operations over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics
//	GET    /v1/catalog
//	GET    /v1/catalog/{category}?q=
//	POST   /v1/sessions
//	GET    /v1/sessions/{id}
//	DELETE /v1/sessions/{id}
//	PUT    /v1/sessions/{id}/parts/{category}   {"id": "..."}
//	DELETE /v1/sessions/{id}/parts/{category}
//	POST   /v1/sessions/{id}/check?lang=
//	GET    /v1/builds?limit=
//	POST   /v1/builds                            {"session_id", "name", "author"}
//	GET    /v1/builds/{id}
//	POST   /v1/builds/{id}/like
//	POST   /v1/builds/{id}/copy
//
// The gallery routes are only registered when a store is configured.
// Errors are returned as {"error": {"code": ..., "message": ...}}.
package server
