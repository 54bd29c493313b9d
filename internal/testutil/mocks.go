// Package testutil provides function-field mocks for the domain ports.
package testutil

import (
	"context"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// InstanceRepo mocks domain.InstanceRepository.
type InstanceRepo struct {
	ExistsByIDFn func(ctx context.Context, id string) (bool, error)
	FindByIDFn   func(ctx context.Context, id string) (*domain.ServiceInstance, error)
	SaveFn       func(ctx context.Context, instance *domain.ServiceInstance) error
	DeleteByIDFn func(ctx context.Context, id string) error
}

func (m *InstanceRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	return m.ExistsByIDFn(ctx, id)
}

func (m *InstanceRepo) FindByID(ctx context.Context, id string) (*domain.ServiceInstance, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *InstanceRepo) Save(ctx context.Context, instance *domain.ServiceInstance) error {
	return m.SaveFn(ctx, instance)
}

func (m *InstanceRepo) DeleteByID(ctx context.Context, id string) error {
	return m.DeleteByIDFn(ctx, id)
}

// BindingRepo mocks domain.BindingRepository.
type BindingRepo struct {
	ExistsByIDFn func(ctx context.Context, id string) (bool, error)
	FindByIDFn   func(ctx context.Context, id string) (*domain.ServiceBinding, error)
	SaveFn       func(ctx context.Context, binding *domain.ServiceBinding) error
	DeleteByIDFn func(ctx context.Context, id string) error
}

func (m *BindingRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	return m.ExistsByIDFn(ctx, id)
}

func (m *BindingRepo) FindByID(ctx context.Context, id string) (*domain.ServiceBinding, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *BindingRepo) Save(ctx context.Context, binding *domain.ServiceBinding) error {
	return m.SaveFn(ctx, binding)
}

func (m *BindingRepo) DeleteByID(ctx context.Context, id string) error {
	return m.DeleteByIDFn(ctx, id)
}

// ResourceStore mocks domain.ResourceStore.
type ResourceStore struct {
	CreateResourceFn func(ctx context.Context, id string) error
	DeleteResourceFn func(ctx context.Context, id string) error
}

func (m *ResourceStore) CreateResource(ctx context.Context, id string) error {
	return m.CreateResourceFn(ctx, id)
}

func (m *ResourceStore) DeleteResource(ctx context.Context, id string) error {
	return m.DeleteResourceFn(ctx, id)
}

// CredentialIssuer mocks domain.CredentialIssuer.
type CredentialIssuer struct {
	IssueFn  func(ctx context.Context, username string, authorities ...string) (*domain.User, error)
	RevokeFn func(ctx context.Context, username string) error
}

func (m *CredentialIssuer) Issue(ctx context.Context, username string, authorities ...string) (*domain.User, error) {
	return m.IssueFn(ctx, username, authorities...)
}

func (m *CredentialIssuer) Revoke(ctx context.Context, username string) error {
	return m.RevokeFn(ctx, username)
}

// CredentialWorkflow mocks domain.CredentialWorkflow.
type CredentialWorkflow struct {
	ProcessCreateFn func(ctx context.Context, req domain.CreateBindingRequest, credentials map[string]interface{}) (map[string]interface{}, error)
	ProcessDeleteFn func(ctx context.Context, serviceDefinitionID, bindingID string) error
}

func (m *CredentialWorkflow) ProcessCreate(ctx context.Context, req domain.CreateBindingRequest, credentials map[string]interface{}) (map[string]interface{}, error) {
	if m.ProcessCreateFn == nil {
		return credentials, nil
	}
	return m.ProcessCreateFn(ctx, req, credentials)
}

func (m *CredentialWorkflow) ProcessDelete(ctx context.Context, serviceDefinitionID, bindingID string) error {
	if m.ProcessDeleteFn == nil {
		return nil
	}
	return m.ProcessDeleteFn(ctx, serviceDefinitionID, bindingID)
}

// SecretEscrow mocks domain.SecretEscrow.
type SecretEscrow struct {
	StoreFn  func(ctx context.Context, name string, credentials map[string]interface{}, grantees []string) error
	ExistsFn func(ctx context.Context, name string) (bool, error)
	DeleteFn func(ctx context.Context, name string) error
}

func (m *SecretEscrow) Store(ctx context.Context, name string, credentials map[string]interface{}, grantees []string) error {
	return m.StoreFn(ctx, name, credentials, grantees)
}

func (m *SecretEscrow) Exists(ctx context.Context, name string) (bool, error) {
	return m.ExistsFn(ctx, name)
}

func (m *SecretEscrow) Delete(ctx context.Context, name string) error {
	return m.DeleteFn(ctx, name)
}

var (
	_ domain.InstanceRepository = (*InstanceRepo)(nil)
	_ domain.BindingRepository  = (*BindingRepo)(nil)
	_ domain.ResourceStore      = (*ResourceStore)(nil)
	_ domain.CredentialIssuer   = (*CredentialIssuer)(nil)
	_ domain.CredentialWorkflow = (*CredentialWorkflow)(nil)
	_ domain.SecretEscrow       = (*SecretEscrow)(nil)
)
