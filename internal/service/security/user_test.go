package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound("user %q not found", username)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrConflict("user %q already exists", user.Username)
	}
	r.nextID++
	saved := *user
	saved.ID = r.nextID
	r.users[user.Username] = &saved
	copied := saved
	return &copied, nil
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, id int64) error {
	for name, u := range r.users {
		if u.ID == id {
			delete(r.users, name)
			return nil
		}
	}
	return domain.ErrNotFound("user %d not found", id)
}

// plainEncoder avoids bcrypt cost in tests that don't verify hashing.
type plainEncoder struct{}

func (plainEncoder) Encode(raw string) (string, error) { return "enc:" + raw, nil }
func (plainEncoder) Matches(raw, encoded string) bool  { return "enc:"+raw == encoded }

func TestUserServiceIssue(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, plainEncoder{})

	user, err := svc.Issue(context.Background(), "binding-1",
		domain.AuthorityFullAccess, "BOOK_STORE_store-1")
	require.NoError(t, err)

	assert.Equal(t, "binding-1", user.Username)
	assert.Len(t, user.Password, 12)
	for _, c := range user.Password {
		assert.Contains(t, passwordChars, string(c))
	}
	assert.Equal(t, []string{domain.AuthorityFullAccess, "BOOK_STORE_store-1"}, user.Authorities)

	// Stored record never holds the plaintext.
	stored, err := repo.FindByUsername(context.Background(), "binding-1")
	require.NoError(t, err)
	assert.Equal(t, "enc:"+user.Password, stored.Password)
	assert.NotEqual(t, user.Password, stored.Password)
}

func TestUserServiceIssueRequiresUsername(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), plainEncoder{})
	_, err := svc.Issue(context.Background(), "")
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestGeneratePasswordUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		p, err := generatePassword()
		require.NoError(t, err)
		require.Len(t, p, 12)
		assert.False(t, seen[p], "password %q generated twice", p)
		seen[p] = true
	}
}

func TestUserServiceRevoke(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, plainEncoder{})

	_, err := svc.Issue(context.Background(), "binding-1", domain.AuthorityFullAccess)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), "binding-1"))
	_, err = repo.FindByUsername(context.Background(), "binding-1")
	assert.Error(t, err)

	// Revoking again is a no-op.
	assert.NoError(t, svc.Revoke(context.Background(), "binding-1"))
}

func TestUserServiceAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, plainEncoder{})

	issued, err := svc.Issue(context.Background(), "binding-1", domain.AuthorityFullAccess)
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "binding-1", issued.Password)
	require.NoError(t, err)
	assert.Equal(t, "binding-1", user.Username)

	var denied *domain.AccessDeniedError
	_, err = svc.Authenticate(context.Background(), "binding-1", "wrong")
	assert.ErrorAs(t, err, &denied)
	_, err = svc.Authenticate(context.Background(), "ghost", "whatever")
	assert.ErrorAs(t, err, &denied)
}

func TestInitializeUsers(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, plainEncoder{})

	require.NoError(t, svc.InitializeUsers(context.Background(), "supersecret"))

	admin, err := repo.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{domain.AuthorityAdmin, domain.AuthorityFullAccess}, admin.Authorities)

	// Idempotent: a second call does not duplicate or overwrite.
	require.NoError(t, svc.InitializeUsers(context.Background(), "otherpassword"))
	count, _ := repo.Count(context.Background())
	assert.EqualValues(t, 1, count)
}

func TestBcryptEncoder(t *testing.T) {
	enc := NewBcryptEncoder(4)

	hashed, err := enc.Encode("sekret")
	require.NoError(t, err)
	assert.NotEqual(t, "sekret", hashed)
	assert.True(t, enc.Matches("sekret", hashed))
	assert.False(t, enc.Matches("wrong", hashed))
}
