// internal/domain/account/errors.go
package account

import (
	"fmt"
	"strings"
)

var (
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = fmt.Errorf("email already registered")
	// ErrAccountNotFound is returned when no account matches.
	ErrAccountNotFound = fmt.Errorf("account not found")
	// ErrInvalidCredentials is returned on a password mismatch.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	// ErrNotAuthenticated is returned when no account is signed in.
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
)

// ValidationError reports which registration fields failed and, for the
// password, which requirements are missing.
type ValidationError struct {
	Field   string
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid %s: missing %s", e.Field, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid %s", e.Field)
}
