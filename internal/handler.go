package internal

// Handler declares routes on a router.
//
// Example:
//
//	type FilesHandler struct {
//	    svc *files.Service
//	}
//
//	func (h *FilesHandler) Routes(r internal.Router) {
//	    r.GET("/files", h.list)
//	    r.POST("/upload", h.upload)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the application's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

// RoutesFunc adapts a function to the Handler interface.
type RoutesFunc func(r Router)

// Routes calls f(r).
func (f RoutesFunc) Routes(r Router) { f(r) }
