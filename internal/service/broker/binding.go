package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// CreateBindingResult carries the outcome of a binding create: the credential
// map to return to the platform, and whether the binding already existed.
type CreateBindingResult struct {
	Credentials map[string]interface{}
	Existed     bool
}

// BindingService manages the service binding lifecycle. Each new binding gets
// a dedicated user scoped to its instance's store; a replayed create returns
// the originally stored credentials without issuing anything new.
type BindingService struct {
	bindings     domain.BindingRepository
	users        domain.CredentialIssuer
	workflow     domain.CredentialWorkflow
	baseURL      string
	resourcePath string
	locks        *keyLock
	logger       *slog.Logger
}

// NewBindingService creates a new BindingService. resourcePath is the URL
// path segment under which provisioned resources are served, for example
// "bookstores".
func NewBindingService(
	bindings domain.BindingRepository,
	users domain.CredentialIssuer,
	workflow domain.CredentialWorkflow,
	baseURL, resourcePath string,
	logger *slog.Logger,
) *BindingService {
	return &BindingService{
		bindings:     bindings,
		users:        users,
		workflow:     workflow,
		baseURL:      baseURL,
		resourcePath: resourcePath,
		locks:        newKeyLock(),
		logger:       logger,
	}
}

// Create creates a service binding, issuing a user whose username is the
// binding ID and whose authorities scope it to the bound instance's store.
// The credential map is built once and persisted; replays return the stored
// map byte for byte.
func (s *BindingService) Create(ctx context.Context, req domain.CreateBindingRequest) (*CreateBindingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.locks.Lock(req.BindingID)
	defer s.locks.Unlock(req.BindingID)

	stored, err := s.bindings.FindByID(ctx, req.BindingID)
	if err == nil {
		s.logger.Debug("service binding already exists", "binding_id", req.BindingID)
		return &CreateBindingResult{Credentials: stored.Credentials, Existed: true}, nil
	}
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	user, err := s.users.Issue(ctx, req.BindingID,
		domain.AuthorityFullAccess, domain.StoreScopeAuthority(req.InstanceID))
	if err != nil {
		return nil, err
	}

	uri, err := url.JoinPath(s.baseURL, s.resourcePath, req.InstanceID)
	if err != nil {
		return nil, fmt.Errorf("build resource uri: %w", err)
	}
	credentials := map[string]interface{}{
		domain.CredentialURIKey:      uri,
		domain.CredentialUsernameKey: user.Username,
		domain.CredentialPasswordKey: user.Password,
	}

	credentials, err = s.workflow.ProcessCreate(ctx, req, credentials)
	if err != nil {
		return nil, err
	}

	if err := s.bindings.Save(ctx, &domain.ServiceBinding{
		ID:          req.BindingID,
		InstanceID:  req.InstanceID,
		Parameters:  req.Parameters,
		Credentials: credentials,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("service binding created", "binding_id", req.BindingID, "instance_id", req.InstanceID)
	return &CreateBindingResult{Credentials: credentials}, nil
}

// Get returns the stored binding record.
func (s *BindingService) Get(ctx context.Context, bindingID string) (*domain.ServiceBinding, error) {
	return s.bindings.FindByID(ctx, bindingID)
}

// Delete removes the binding record, revokes its issued user, and cleans up
// any escrowed credentials. Deleting an unknown binding fails with a
// not-found error.
func (s *BindingService) Delete(ctx context.Context, req domain.DeleteBindingRequest) error {
	s.locks.Lock(req.BindingID)
	defer s.locks.Unlock(req.BindingID)

	exists, err := s.bindings.ExistsByID(ctx, req.BindingID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound("service binding %q does not exist", req.BindingID)
	}

	if err := s.bindings.DeleteByID(ctx, req.BindingID); err != nil {
		return err
	}
	if err := s.users.Revoke(ctx, req.BindingID); err != nil {
		return err
	}
	if err := s.workflow.ProcessDelete(ctx, req.ServiceDefinitionID, req.BindingID); err != nil {
		return err
	}

	s.logger.Info("service binding deleted", "binding_id", req.BindingID, "instance_id", req.InstanceID)
	return nil
}
