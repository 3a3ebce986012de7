// Package internal is the HTTP kernel of the service: App, Router, Context,
// HTTPError and the graceful server runtime, built on go-chi/chi/v5.
//
// # Core Types
//
//   - App: owns the chi router, global middleware, error handling and shutdown hooks
//   - Context: request/response access, JSON and multipart helpers, request-scoped logging
//   - Router: GET/POST/DELETE plus Group, Route and Use
//   - Handler: declares routes on a Router; RoutesFunc adapts a plain function
//   - HandlerFunc: route handler returning an error
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned by handlers and middleware
//
// # Context as context.Context
//
// Context embeds context.Context, so handlers pass it straight to storage
// and verification calls:
//
//	func (h *Files) list(c internal.Context) error {
//	    listing, err := h.svc.List(c, id, opts)
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, listing)
//	}
//
// Values stored with Set live in the request context, so middleware can hand
// data (request id, authenticated identity) to later handlers.
//
// # Error Handling
//
// A handler or middleware that returns an error does not write a response
// itself. The App calls the ErrorHandler configured with WithErrorHandler;
// without one, HTTPError values are rendered with their code and message and
// every other error becomes a bare 500. Nothing is rendered when the response
// was already written.
//
// # Server Runtime
//
// Run listens on the configured address and blocks until SIGINT/SIGTERM or
// cancellation of the base context, then shuts the server down within the
// shutdown timeout and runs the shutdown hooks in registration order.
package internal
