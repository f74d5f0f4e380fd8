// internal/domain/account/entity.go
package account

import (
	"time"

	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/wishlist"
)

// Statistics tracks per-account usage counters.
type Statistics struct {
	TotalLogins   int       `json:"totalLogins"`
	TotalSessions int       `json:"totalSessions"`
	LastActivity  time.Time `json:"lastActivity,omitempty"`
}

// Preferences holds shopper-tunable settings.
type Preferences struct {
	Newsletter    bool   `json:"newsletter"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// Account is one registered shopper in the directory. The password hash
// never leaves the package through JSON.
type Account struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"`
	Phone            string           `json:"phone,omitempty"`
	Role             string           `json:"role"`
	CreatedAt        time.Time        `json:"createdAt"`
	LoginAttempts    int              `json:"loginAttempts"`
	LastLoginAttempt time.Time        `json:"lastLoginAttempt,omitempty"`
	LastLogin        time.Time        `json:"lastLogin,omitempty"`
	Statistics       Statistics       `json:"statistics"`
	Preferences      Preferences      `json:"preferences"`
	Cart             []cart.Line      `json:"cart"`
	Wishlist         []wishlist.Entry `json:"wishlist"`
	Orders           []string         `json:"orders"`
}

// record is the persisted form of an account, hash included.
type record struct {
	Account
	PasswordHash string `json:"passwordHash"`
}

func (r record) account() Account {
	a := r.Account
	a.PasswordHash = r.PasswordHash
	return a
}

func toRecord(a Account) record {
	r := record{Account: a, PasswordHash: a.PasswordHash}
	r.Account.PasswordHash = ""
	return r
}

// View returns the account with the credential stripped, for handing to
// callers outside the directory.
func (a Account) View() Account {
	a.PasswordHash = ""
	return a
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

// ProfileUpdate carries optional profile field changes.
type ProfileUpdate struct {
	Name        *string      `json:"name,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}
