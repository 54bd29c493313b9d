package domain

import "time"

// Authority tags granted to broker users. A user carrying a store-scope tag
// (AuthorityStorePrefix + storeID) may only act on that store; a user with no
// store-scope tag is unscoped.
const (
	AuthorityAdmin      = "ROLE_ADMIN"
	AuthorityFullAccess = "ROLE_FULL_ACCESS"
	AuthorityReadOnly   = "ROLE_READ_ONLY"

	AuthorityStorePrefix = "BOOK_STORE_"
)

// StoreScopeAuthority returns the authority tag restricting a user to a
// single book store.
func StoreScopeAuthority(storeID string) string {
	return AuthorityStorePrefix + storeID
}

// User is a principal that can authenticate against the broker. The Password
// field holds the encoded form when read from a repository; the plaintext is
// only ever present on the value returned by credential issuance.
type User struct {
	ID          int64
	Username    string
	Password    string
	Authorities []string
	CreatedAt   time.Time
}

// HasAuthority reports whether the user carries the given authority tag.
func (u *User) HasAuthority(authority string) bool {
	for _, a := range u.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
