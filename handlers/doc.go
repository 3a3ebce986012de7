// Package handlers exposes the file service over HTTP.
//
// Files serves the authenticated API (/me, /upload, /files...), System serves
// the unauthenticated probes and the metrics endpoint, and ErrorHandler
// renders every error as {"detail": "..."} with the status of its kind.
package handlers
