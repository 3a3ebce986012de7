// Package health provides liveness and readiness HTTP handlers.
//
// Readiness runs a set of named checks in parallel under a shared timeout.
// The service registers one check, the storage bucket ping:
//
//	r.Mount("/health/ready", health.ReadinessHandler(health.Checks{
//	    "storage": bucket.Ping,
//	}, health.WithLogger(log)))
//
// Responses are plain text ("OK" / "Service Unavailable") unless the client
// asks for JSON with ?format=json or an Accept header.
package health
