package files

import (
	"fmt"

	"github.com/dmitrymomot/filevault/pkg/auth"
)

// CanDownload allows the owner and admins.
func CanDownload(id auth.Identity, key string) error {
	if id.IsAdmin || Owner(key) == id.Subject {
		return nil
	}
	return fmt.Errorf("%w: download %s", ErrForbidden, key)
}

// CanDelete allows the owner only. Admin status does not apply.
func CanDelete(id auth.Identity, key string) error {
	if Owner(key) == id.Subject {
		return nil
	}
	return fmt.Errorf("%w: delete %s", ErrForbidden, key)
}
