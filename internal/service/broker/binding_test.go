package broker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/testutil"
)

func validCreateBindingRequest() domain.CreateBindingRequest {
	return domain.CreateBindingRequest{
		InstanceID:          "instance-1",
		BindingID:           "binding-1",
		ServiceDefinitionID: "service-1",
	}
}

func notFoundBindingRepo() *testutil.BindingRepo {
	return &testutil.BindingRepo{
		FindByIDFn: func(_ context.Context, id string) (*domain.ServiceBinding, error) {
			return nil, domain.ErrNotFound("service binding %q does not exist", id)
		},
	}
}

func staticIssuer(t *testing.T) *testutil.CredentialIssuer {
	return &testutil.CredentialIssuer{
		IssueFn: func(_ context.Context, username string, authorities ...string) (*domain.User, error) {
			assert.Equal(t, "binding-1", username)
			assert.Equal(t, []string{domain.AuthorityFullAccess, "BOOK_STORE_instance-1"}, authorities)
			return &domain.User{Username: username, Password: "plaintext12ab"}, nil
		},
	}
}

func TestBindingCreate(t *testing.T) {
	t.Run("issues scoped credentials", func(t *testing.T) {
		bindings := notFoundBindingRepo()
		var saved *domain.ServiceBinding
		bindings.SaveFn = func(_ context.Context, b *domain.ServiceBinding) error {
			saved = b
			return nil
		}

		svc := NewBindingService(bindings, staticIssuer(t), &testutil.CredentialWorkflow{},
			"https://broker.example.com", "bookstores", discardLogger())

		result, err := svc.Create(context.Background(), validCreateBindingRequest())
		require.NoError(t, err)
		assert.False(t, result.Existed)
		assert.Equal(t, "https://broker.example.com/bookstores/instance-1", result.Credentials[domain.CredentialURIKey])
		assert.Equal(t, "binding-1", result.Credentials[domain.CredentialUsernameKey])
		assert.Equal(t, "plaintext12ab", result.Credentials[domain.CredentialPasswordKey])
		require.NotNil(t, saved)
		assert.Equal(t, result.Credentials, saved.Credentials)
	})

	t.Run("replay returns stored credentials untouched", func(t *testing.T) {
		stored := map[string]interface{}{
			domain.CredentialURIKey:      "https://broker.example.com/bookstores/instance-1",
			domain.CredentialUsernameKey: "binding-1",
			domain.CredentialPasswordKey: "original-pass",
		}
		bindings := &testutil.BindingRepo{
			FindByIDFn: func(_ context.Context, _ string) (*domain.ServiceBinding, error) {
				return &domain.ServiceBinding{ID: "binding-1", Credentials: stored}, nil
			},
		}
		issuer := &testutil.CredentialIssuer{
			IssueFn: func(_ context.Context, _ string, _ ...string) (*domain.User, error) {
				t.Fatal("issue must not be called on replay")
				return nil, nil
			},
		}

		svc := NewBindingService(bindings, issuer, &testutil.CredentialWorkflow{},
			"https://broker.example.com", "bookstores", discardLogger())

		result, err := svc.Create(context.Background(), validCreateBindingRequest())
		require.NoError(t, err)
		assert.True(t, result.Existed)
		assert.Equal(t, stored, result.Credentials)
	})

	t.Run("workflow output replaces credentials", func(t *testing.T) {
		bindings := notFoundBindingRepo()
		var saved *domain.ServiceBinding
		bindings.SaveFn = func(_ context.Context, b *domain.ServiceBinding) error {
			saved = b
			return nil
		}
		workflow := &testutil.CredentialWorkflow{
			ProcessCreateFn: func(_ context.Context, req domain.CreateBindingRequest, credentials map[string]interface{}) (map[string]interface{}, error) {
				assert.Contains(t, credentials, domain.CredentialPasswordKey)
				return map[string]interface{}{
					domain.CredentialEscrowRefKey: "broker/service-1/" + req.BindingID,
				}, nil
			},
		}

		svc := NewBindingService(bindings, staticIssuer(t), workflow,
			"https://broker.example.com", "bookstores", discardLogger())

		result, err := svc.Create(context.Background(), validCreateBindingRequest())
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{
			domain.CredentialEscrowRefKey: "broker/service-1/binding-1",
		}, result.Credentials)
		assert.Equal(t, result.Credentials, saved.Credentials)
	})

	t.Run("rejects missing ids", func(t *testing.T) {
		svc := NewBindingService(notFoundBindingRepo(), staticIssuer(t), &testutil.CredentialWorkflow{},
			"https://broker.example.com", "bookstores", discardLogger())

		_, err := svc.Create(context.Background(), domain.CreateBindingRequest{InstanceID: "only"})
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestBindingDelete(t *testing.T) {
	t.Run("removes record, revokes user, cleans escrow", func(t *testing.T) {
		var deletedRecord, revokedUser string
		var workflowServiceID, workflowBindingID string

		bindings := &testutil.BindingRepo{
			ExistsByIDFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
			DeleteByIDFn: func(_ context.Context, id string) error {
				deletedRecord = id
				return nil
			},
		}
		issuer := &testutil.CredentialIssuer{
			RevokeFn: func(_ context.Context, username string) error {
				revokedUser = username
				return nil
			},
		}
		workflow := &testutil.CredentialWorkflow{
			ProcessDeleteFn: func(_ context.Context, serviceDefinitionID, bindingID string) error {
				workflowServiceID = serviceDefinitionID
				workflowBindingID = bindingID
				return nil
			},
		}

		svc := NewBindingService(bindings, issuer, workflow,
			"https://broker.example.com", "bookstores", discardLogger())

		err := svc.Delete(context.Background(), domain.DeleteBindingRequest{
			InstanceID:          "instance-1",
			BindingID:           "binding-1",
			ServiceDefinitionID: "service-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "binding-1", deletedRecord)
		assert.Equal(t, "binding-1", revokedUser)
		assert.Equal(t, "service-1", workflowServiceID)
		assert.Equal(t, "binding-1", workflowBindingID)
	})

	t.Run("unknown binding is not found", func(t *testing.T) {
		bindings := &testutil.BindingRepo{
			ExistsByIDFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		}
		svc := NewBindingService(bindings, &testutil.CredentialIssuer{}, &testutil.CredentialWorkflow{},
			"https://broker.example.com", "bookstores", discardLogger())

		err := svc.Delete(context.Background(), domain.DeleteBindingRequest{BindingID: "nope"})
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
