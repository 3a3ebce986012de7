package files

import "errors"

var (
	ErrInvalidFileType    = errors.New("files: file type not allowed")
	ErrNotFound           = errors.New("files: file not found")
	ErrForbidden          = errors.New("files: not allowed")
	ErrSigningUnavailable = errors.New("files: signing identity unavailable")
	ErrNoFiles            = errors.New("files: no files uploaded")
)
