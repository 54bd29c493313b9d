package security

import (
	"strings"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// StoreAuthorizer evaluates store-scope authority tags. A tag of the form
// BOOK_STORE_<id> restricts the principal to that single store; the first
// such tag found decides the outcome. A principal carrying no store-scope
// tag at all is unscoped and passes for any store.
type StoreAuthorizer struct{}

// NewStoreAuthorizer creates a new StoreAuthorizer.
func NewStoreAuthorizer() *StoreAuthorizer {
	return &StoreAuthorizer{}
}

// Authorize reports whether the given authority tags grant access to storeID.
func (a *StoreAuthorizer) Authorize(authorities []string, storeID string) bool {
	for _, authority := range authorities {
		if strings.HasPrefix(authority, domain.AuthorityStorePrefix) {
			scoped := strings.TrimPrefix(authority, domain.AuthorityStorePrefix)
			return scoped == storeID
		}
	}
	return true
}

// CanRead reports whether the authorities permit read operations on store
// contents. The store-scope check in Authorize is separate and must also pass.
func CanRead(authorities []string) bool {
	for _, a := range authorities {
		switch a {
		case domain.AuthorityAdmin, domain.AuthorityFullAccess, domain.AuthorityReadOnly:
			return true
		}
	}
	return false
}

// CanWrite reports whether the authorities permit mutating store contents.
func CanWrite(authorities []string) bool {
	for _, a := range authorities {
		switch a {
		case domain.AuthorityAdmin, domain.AuthorityFullAccess:
			return true
		}
	}
	return false
}

var _ domain.Authorizer = (*StoreAuthorizer)(nil)
