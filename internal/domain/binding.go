package domain

import "time"

// Credential map keys returned to the platform on binding creation.
const (
	CredentialURIKey      = "uri"
	CredentialUsernameKey = "username"
	CredentialPasswordKey = "password"

	// CredentialEscrowRefKey replaces the raw credential map when an
	// external secret escrow is configured.
	CredentialEscrowRefKey = "credhub-ref"
)

// Bind resource metadata keys carrying the identity of the requesting
// application or client, used for escrow read grants.
const (
	BindResourceAppGUIDKey  = "app_guid"
	BindResourceClientIDKey = "credential_client_id"
)

// ServiceBinding is the broker's record of a service binding and the
// credentials issued for it. Credentials are generated exactly once per
// binding; a replayed create returns the stored map unchanged.
type ServiceBinding struct {
	ID          string
	InstanceID  string
	Parameters  map[string]interface{}
	Credentials map[string]interface{}
	CreatedAt   time.Time
}

// CreateBindingRequest holds parameters for creating a service binding.
type CreateBindingRequest struct {
	InstanceID          string
	BindingID           string
	ServiceDefinitionID string
	Parameters          map[string]interface{}
	BindResource        map[string]interface{}
}

// Validate checks that the request is well-formed.
func (r *CreateBindingRequest) Validate() error {
	if r.InstanceID == "" {
		return ErrValidation("instance_id is required")
	}
	if r.BindingID == "" {
		return ErrValidation("binding_id is required")
	}
	return nil
}

// DeleteBindingRequest holds parameters for deleting a service binding.
type DeleteBindingRequest struct {
	InstanceID          string
	BindingID           string
	ServiceDefinitionID string
}
