package escrow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/db/crypto"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/db/repository"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// EncryptedSecretStore keeps escrowed credential maps in the broker's own
// database, encrypted with AES-256-GCM before they reach the repository.
type EncryptedSecretStore struct {
	repo      *repository.EscrowRepo
	encryptor *crypto.Encryptor
}

// NewEncryptedSecretStore creates a secret store backed by the given
// repository and encryptor.
func NewEncryptedSecretStore(repo *repository.EscrowRepo, encryptor *crypto.Encryptor) *EncryptedSecretStore {
	return &EncryptedSecretStore{repo: repo, encryptor: encryptor}
}

// Store encrypts the credential map and upserts it under name.
func (s *EncryptedSecretStore) Store(ctx context.Context, name string, credentials map[string]interface{}, grantees []string) error {
	plaintext, err := json.Marshal(credentials)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	ciphertext, err := s.encryptor.Encrypt(string(plaintext))
	if err != nil {
		return fmt.Errorf("encrypt credentials: %w", err)
	}
	return s.repo.Put(ctx, &repository.EscrowRecord{
		Name:       name,
		Ciphertext: ciphertext,
		Grantees:   grantees,
	})
}

// Exists reports whether a secret is stored under name.
func (s *EncryptedSecretStore) Exists(ctx context.Context, name string) (bool, error) {
	return s.repo.Exists(ctx, name)
}

// Delete removes the secret stored under name.
func (s *EncryptedSecretStore) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}

// Retrieve decrypts and returns the credential map stored under name.
func (s *EncryptedSecretStore) Retrieve(ctx context.Context, name string) (map[string]interface{}, error) {
	rec, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	plaintext, err := s.encryptor.Decrypt(rec.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decrypt credentials: %w", err)
	}
	var credentials map[string]interface{}
	if err := json.Unmarshal([]byte(plaintext), &credentials); err != nil {
		return nil, fmt.Errorf("unmarshal credentials: %w", err)
	}
	return credentials, nil
}

var _ domain.SecretEscrow = (*EncryptedSecretStore)(nil)
