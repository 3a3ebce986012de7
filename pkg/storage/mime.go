package storage

import (
	"mime"
	"strings"
)

// MIMEOctetStream is the generic binary content type.
const MIMEOctetStream = "application/octet-stream"

// extensionTypes pins the types of the extensions the service accepts so
// they do not depend on the host's mime.types file.
var extensionTypes = map[string]string{
	"txt":  "text/plain; charset=utf-8",
	"json": "application/json",
	"pdf":  "application/pdf",
}

// TypeByExtension returns the MIME type for ext (with or without the leading dot).
// Unknown extensions map to MIMEOctetStream.
func TypeByExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return MIMEOctetStream
	}
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension("." + ext); t != "" {
		return t
	}
	return MIMEOctetStream
}

// IsGeneric reports whether contentType carries no real type information.
func IsGeneric(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return true
	}
	return mediaType == MIMEOctetStream || mediaType == "binary/octet-stream"
}
