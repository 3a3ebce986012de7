package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/middlewares"
	"github.com/dmitrymomot/filevault/pkg/auth"
	"github.com/dmitrymomot/filevault/pkg/files"
)

// Client-facing messages.
const (
	MsgMissingToken       = "Missing Bearer token"
	MsgUnauthorized       = "Unauthorized"
	MsgInvalidFileType    = "Only .txt, .json, .pdf are allowed"
	MsgNoFiles            = "No files uploaded"
	MsgInvalidForm        = "Invalid multipart form"
	MsgFileNotFound       = "File not found"
	MsgNotAllowed         = "Not allowed"
	MsgSigningUnavailable = "Missing signing credentials (cannot sign URL)."
	MsgNotFound           = "Not Found"
	MsgMethodNotAllowed   = "Method Not Allowed"
	MsgInternal           = "Internal Server Error"
)

// errInvalidForm marks a request body that could not be parsed as multipart.
var errInvalidForm = errors.New("handlers: invalid multipart form")

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

// Classify maps err to the HTTP error shown to the client.
// The original error is kept in Err for logging.
func Classify(err error) *internal.HTTPError {
	if _, ok := middlewares.AsPanicError(err); ok {
		return internal.ErrInternal(MsgInternal, internal.WithError(err))
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return internal.ErrUnauthorized(MsgMissingToken, internal.WithError(err))
	case errors.Is(err, auth.ErrUnauthenticated):
		return internal.ErrUnauthorized(MsgUnauthorized, internal.WithError(err))
	case errors.Is(err, files.ErrInvalidFileType):
		return internal.ErrBadRequest(MsgInvalidFileType, internal.WithError(err))
	case errors.Is(err, files.ErrNoFiles):
		return internal.ErrBadRequest(MsgNoFiles, internal.WithError(err))
	case errors.Is(err, errInvalidForm):
		return internal.ErrBadRequest(MsgInvalidForm, internal.WithError(err))
	case errors.Is(err, files.ErrNotFound):
		return internal.ErrNotFound(MsgFileNotFound, internal.WithError(err))
	case errors.Is(err, files.ErrForbidden):
		return internal.ErrForbidden(MsgNotAllowed, internal.WithError(err))
	case errors.Is(err, files.ErrSigningUnavailable):
		return internal.ErrInternal(MsgSigningUnavailable, internal.WithError(err))
	}

	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return httpErr
	}
	return internal.ErrInternal(MsgInternal, internal.WithError(err))
}

// ErrorHandler renders errors returned by handlers and middleware.
// Server errors are logged at ERROR; client errors are not logged here.
func ErrorHandler(c internal.Context, err error) error {
	httpErr := Classify(err)

	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", httpErr.Code),
			slog.Any("error", err),
		)
	}
	if httpErr.Code == http.StatusUnauthorized {
		c.SetHeader("WWW-Authenticate", "Bearer")
	}

	return c.JSON(httpErr.Code, ErrorResponse{
		Detail:    httpErr.Message,
		RequestID: middlewares.GetRequestID(c),
	})
}

// NotFound answers unknown routes.
func NotFound(c internal.Context) error {
	return internal.ErrNotFound(MsgNotFound)
}

// MethodNotAllowed answers known routes with an unsupported method.
func MethodNotAllowed(c internal.Context) error {
	return internal.ErrMethodNotAllowed(MsgMethodNotAllowed)
}
