package escrow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/db"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/db/crypto"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/db/repository"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newTestSecretStore(t *testing.T) *EncryptedSecretStore {
	t.Helper()
	writeDB, _ := db.OpenTestSQLite(t)
	encryptor, err := crypto.NewEncryptor(testKey)
	require.NoError(t, err)
	return NewEncryptedSecretStore(repository.NewEscrowRepo(writeDB), encryptor)
}

func TestEncryptedSecretStoreRoundTrip(t *testing.T) {
	store := newTestSecretStore(t)
	ctx := context.Background()

	creds := map[string]interface{}{
		"uri":      "https://broker.example.com/bookstores/instance-1",
		"username": "binding-1",
		"password": "s3cr3tPass12",
	}
	name := "bookstore-broker/service-1/binding-1"

	require.NoError(t, store.Store(ctx, name, creds, []string{"app-1"}))

	exists, err := store.Exists(ctx, name)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.Retrieve(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, store.Delete(ctx, name))
	exists, err = store.Exists(ctx, name)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEncryptedSecretStoreCiphertextOpaque(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	encryptor, err := crypto.NewEncryptor(testKey)
	require.NoError(t, err)
	repo := repository.NewEscrowRepo(writeDB)
	store := NewEncryptedSecretStore(repo, encryptor)

	name := "bookstore-broker/service-1/binding-1"
	require.NoError(t, store.Store(context.Background(), name,
		map[string]interface{}{"password": "plaintext-marker"}, nil))

	rec, err := repo.Get(context.Background(), name)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(rec.Ciphertext), "plaintext-marker")
}
