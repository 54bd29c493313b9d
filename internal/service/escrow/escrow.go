// Package escrow implements the optional secret-escrow workflow for binding
// credentials. When active, the raw credential map is written to a secret
// store under a derived name and the binding returns a single reference key
// instead of the credentials themselves.
package escrow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// NoopWorkflow is the default credential workflow: credentials pass through
// unchanged and deletion does nothing.
type NoopWorkflow struct{}

func (NoopWorkflow) ProcessCreate(_ context.Context, _ domain.CreateBindingRequest, credentials map[string]interface{}) (map[string]interface{}, error) {
	return credentials, nil
}

func (NoopWorkflow) ProcessDelete(_ context.Context, _, _ string) error {
	return nil
}

var _ domain.CredentialWorkflow = NoopWorkflow{}

// Workflow escrows binding credentials in a secret store. Secret names are
// derived as {broker}/{serviceDefinitionId}/{bindingId}.
type Workflow struct {
	store      domain.SecretEscrow
	brokerName string
	logger     *slog.Logger
}

// NewWorkflow creates an escrow Workflow backed by the given secret store.
func NewWorkflow(store domain.SecretEscrow, brokerName string, logger *slog.Logger) *Workflow {
	return &Workflow{store: store, brokerName: brokerName, logger: logger}
}

// ProcessCreate writes the credential map to the secret store, grants read
// access to the app or client identity found in the bind resource metadata,
// and returns a credential map holding only the escrow reference key.
func (w *Workflow) ProcessCreate(ctx context.Context, req domain.CreateBindingRequest, credentials map[string]interface{}) (map[string]interface{}, error) {
	if len(credentials) == 0 {
		return credentials, nil
	}

	name := w.secretName(req.ServiceDefinitionID, req.BindingID)
	grantees := granteesFromBindResource(req.BindResource)

	w.logger.Debug("storing binding credentials in escrow", "name", name)
	if err := w.store.Store(ctx, name, credentials, grantees); err != nil {
		return nil, fmt.Errorf("escrow credentials %q: %w", name, err)
	}

	return map[string]interface{}{domain.CredentialEscrowRefKey: name}, nil
}

// ProcessDelete removes the escrowed secret for a binding. The secret is
// only deleted when confirmed present, so a secret already removed
// out-of-band does not fail the binding delete.
func (w *Workflow) ProcessDelete(ctx context.Context, serviceDefinitionID, bindingID string) error {
	name := w.secretName(serviceDefinitionID, bindingID)

	exists, err := w.store.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("check escrowed secret %q: %w", name, err)
	}
	if !exists {
		return nil
	}

	w.logger.Debug("deleting escrowed binding credentials", "name", name)
	if err := w.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete escrowed secret %q: %w", name, err)
	}
	return nil
}

func (w *Workflow) secretName(serviceDefinitionID, bindingID string) string {
	return fmt.Sprintf("%s/%s/%s", w.brokerName, serviceDefinitionID, bindingID)
}

// granteesFromBindResource extracts the requesting app/client identities
// that should be granted read access to the escrowed secret.
func granteesFromBindResource(bindResource map[string]interface{}) []string {
	var grantees []string
	if v, ok := bindResource[domain.BindResourceAppGUIDKey].(string); ok && v != "" {
		grantees = append(grantees, v)
	}
	if v, ok := bindResource[domain.BindResourceClientIDKey].(string); ok && v != "" {
		grantees = append(grantees, v)
	}
	return grantees
}

var _ domain.CredentialWorkflow = (*Workflow)(nil)
