package security

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

const (
	passwordChars  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	passwordLength = 12

	adminUsername = "admin"
)

// UserService issues and revokes broker users. Issued passwords are
// generated from a secure random source, encoded before persistence, and
// returned in plaintext exactly once.
type UserService struct {
	repo    domain.UserRepository
	encoder PasswordEncoder
}

// NewUserService creates a new UserService.
func NewUserService(repo domain.UserRepository, encoder PasswordEncoder) *UserService {
	return &UserService{repo: repo, encoder: encoder}
}

// Issue creates a user with a freshly generated password and the given
// authorities. The returned user carries the plaintext password; the stored
// record holds only the encoded form.
func (s *UserService) Issue(ctx context.Context, username string, authorities ...string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrValidation("username is required")
	}

	password, err := generatePassword()
	if err != nil {
		return nil, err
	}
	encoded, err := s.encoder.Encode(password)
	if err != nil {
		return nil, fmt.Errorf("encode password: %w", err)
	}

	saved, err := s.repo.Save(ctx, &domain.User{
		Username:    username,
		Password:    encoded,
		Authorities: authorities,
	})
	if err != nil {
		return nil, err
	}

	issued := *saved
	issued.Password = password
	return &issued, nil
}

// Revoke deletes the user with the given username. Deleting an unknown
// username is a no-op: by the time revocation runs, the owning binding's
// existence has already been confirmed by the caller.
func (s *UserService) Revoke(ctx context.Context, username string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return s.repo.DeleteByID(ctx, user.ID)
}

// Authenticate verifies a username/password pair against the stored encoded
// secret and returns the user on success.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.ErrAccessDenied("bad credentials")
		}
		return nil, err
	}
	if !s.encoder.Matches(password, user.Password) {
		return nil, domain.ErrAccessDenied("bad credentials")
	}
	return user, nil
}

// FindByUsername returns the stored user record (encoded password).
func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// InitializeUsers creates the bootstrap admin user if the user store is
// empty. The admin password is well-known by default and expected to be
// rotated by the operator. Idempotent: any existing user skips the seed.
func (s *UserService) InitializeUsers(ctx context.Context, adminPassword string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	encoded, err := s.encoder.Encode(adminPassword)
	if err != nil {
		return fmt.Errorf("encode admin password: %w", err)
	}
	_, err = s.repo.Save(ctx, &domain.User{
		Username:    adminUsername,
		Password:    encoded,
		Authorities: []string{domain.AuthorityAdmin, domain.AuthorityFullAccess},
	})
	return err
}

// generatePassword draws passwordLength characters uniformly from the
// alphanumeric alphabet using crypto/rand.
func generatePassword() (string, error) {
	max := big.NewInt(int64(len(passwordChars)))
	out := make([]byte, passwordLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = passwordChars[n.Int64()]
	}
	return string(out), nil
}

var _ domain.CredentialIssuer = (*UserService)(nil)
