package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

func TestStoreAuthorizer(t *testing.T) {
	a := NewStoreAuthorizer()

	tests := []struct {
		name        string
		authorities []string
		storeID     string
		want        bool
	}{
		{"matching scope", []string{"BOOK_STORE_store-1"}, "store-1", true},
		{"mismatched scope", []string{"BOOK_STORE_store-1"}, "store-2", false},
		{"no scope tag is unscoped", []string{domain.AuthorityAdmin, domain.AuthorityFullAccess}, "any-store", true},
		{"empty authorities", nil, "store-1", true},
		{"first scope tag decides", []string{"BOOK_STORE_store-1", "BOOK_STORE_store-2"}, "store-2", false},
		{"scope among role tags", []string{domain.AuthorityFullAccess, "BOOK_STORE_store-1"}, "store-1", true},
		{"prefix only does not match", []string{"BOOK_STORE_"}, "store-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Authorize(tt.authorities, tt.storeID))
		})
	}
}

func TestCanReadCanWrite(t *testing.T) {
	assert.True(t, CanRead([]string{domain.AuthorityReadOnly}))
	assert.True(t, CanRead([]string{domain.AuthorityFullAccess}))
	assert.True(t, CanRead([]string{domain.AuthorityAdmin}))
	assert.False(t, CanRead([]string{"BOOK_STORE_store-1"}))

	assert.True(t, CanWrite([]string{domain.AuthorityFullAccess}))
	assert.True(t, CanWrite([]string{domain.AuthorityAdmin}))
	assert.False(t, CanWrite([]string{domain.AuthorityReadOnly}))
	assert.False(t, CanWrite(nil))
}

func TestStoreScopeAuthority(t *testing.T) {
	assert.Equal(t, "BOOK_STORE_store-1", domain.StoreScopeAuthority("store-1"))
}
