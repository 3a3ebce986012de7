package files

import (
	"fmt"
	"strings"
)

// AllowedExtensions is the upload allow-list.
var AllowedExtensions = []string{"txt", "json", "pdf"}

// Extension returns the lowercased text after the last dot, or "" when name has no dot.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// ValidateExtension returns the extension of filename if it is allowed.
func ValidateExtension(filename string) (string, error) {
	ext := Extension(filename)
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFileType, filename)
}
