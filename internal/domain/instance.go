package domain

import "time"

// ServiceInstance is the broker's record of a provisioned service instance.
// The instance ID is supplied by the platform and treated as an opaque string.
type ServiceInstance struct {
	ID                  string
	ServiceDefinitionID string
	PlanID              string
	Parameters          map[string]interface{}
	CreatedAt           time.Time
}

// CreateInstanceRequest holds parameters for provisioning a service instance.
type CreateInstanceRequest struct {
	InstanceID          string
	ServiceDefinitionID string
	PlanID              string
	Parameters          map[string]interface{}
}

// Validate checks that the request is well-formed.
func (r *CreateInstanceRequest) Validate() error {
	if r.InstanceID == "" {
		return ErrValidation("instance_id is required")
	}
	if r.ServiceDefinitionID == "" {
		return ErrValidation("service_id is required")
	}
	if r.PlanID == "" {
		return ErrValidation("plan_id is required")
	}
	return nil
}
