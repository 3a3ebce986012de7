package files

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateKey returns "<owner>/<uuid>_<filename>". The random v4 UUID keeps
// repeated uploads of the same name apart.
func GenerateKey(owner, filename string) string {
	return owner + "/" + uuid.NewString() + "_" + filename
}

// ParseKey splits key on its first "/" into the owner and the display name.
// The display name keeps the random prefix. A key without "/" is returned
// as both owner and name.
func ParseKey(key string) (owner, name string) {
	owner, name, ok := strings.Cut(key, "/")
	if !ok {
		return key, key
	}
	return owner, name
}

// Owner returns the owner segment of key.
func Owner(key string) string {
	owner, _ := ParseKey(key)
	return owner
}

// DisplayName returns the name segment of key.
func DisplayName(key string) string {
	_, name := ParseKey(key)
	return name
}
