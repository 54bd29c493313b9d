package domain

import "context"

// ResourceStore creates and destroys the per-instance backing resource
// (a book collection or a key-value map) correlated with a service instance.
type ResourceStore interface {
	CreateResource(ctx context.Context, id string) error
	DeleteResource(ctx context.Context, id string) error
}

// CredentialIssuer mints and revokes broker users on behalf of the binding
// lifecycle. Issue returns the user with its plaintext password set; the
// plaintext cannot be retrieved again after the call returns.
type CredentialIssuer interface {
	Issue(ctx context.Context, username string, authorities ...string) (*User, error)
	Revoke(ctx context.Context, username string) error
}

// Authorizer decides whether a set of authority tags grants access to a
// specific store. A principal with no store-scope tag is unscoped and passes
// for any store.
type Authorizer interface {
	Authorize(authorities []string, storeID string) bool
}

// CredentialWorkflow hooks binding creation and deletion so credentials can
// be handed to an external secret escrow. ProcessCreate returns the
// credential map the binding should persist and return: either the input map
// unchanged (no escrow) or a single reference entry pointing at the escrowed
// secret.
type CredentialWorkflow interface {
	ProcessCreate(ctx context.Context, req CreateBindingRequest, credentials map[string]interface{}) (map[string]interface{}, error)
	ProcessDelete(ctx context.Context, serviceDefinitionID, bindingID string) error
}
