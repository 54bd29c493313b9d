// Package broker implements the service instance and service binding
// lifecycles: idempotent provisioning, credential issuance on bind, and
// teardown of records, resources, and issued credentials.
package broker

import (
	"context"
	"log/slog"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// InstanceService manages the service instance lifecycle. Create is
// idempotent per instance ID; concurrent operations on the same ID are
// serialized by a keyed lock.
type InstanceService struct {
	instances domain.InstanceRepository
	resources domain.ResourceStore
	locks     *keyLock
	logger    *slog.Logger
}

// NewInstanceService creates a new InstanceService.
func NewInstanceService(instances domain.InstanceRepository, resources domain.ResourceStore, logger *slog.Logger) *InstanceService {
	return &InstanceService{
		instances: instances,
		resources: resources,
		locks:     newKeyLock(),
		logger:    logger,
	}
}

// Create provisions a service instance and its backing resource. A replayed
// create for an existing instance ID performs no side effects and reports
// existed=true.
func (s *InstanceService) Create(ctx context.Context, req domain.CreateInstanceRequest) (existed bool, err error) {
	if err := req.Validate(); err != nil {
		return false, err
	}

	s.locks.Lock(req.InstanceID)
	defer s.locks.Unlock(req.InstanceID)

	exists, err := s.instances.ExistsByID(ctx, req.InstanceID)
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.Debug("service instance already exists", "instance_id", req.InstanceID)
		return true, nil
	}

	if err := s.resources.CreateResource(ctx, req.InstanceID); err != nil {
		return false, err
	}
	if err := s.instances.Save(ctx, &domain.ServiceInstance{
		ID:                  req.InstanceID,
		ServiceDefinitionID: req.ServiceDefinitionID,
		PlanID:              req.PlanID,
		Parameters:          req.Parameters,
	}); err != nil {
		return false, err
	}

	s.logger.Info("service instance created", "instance_id", req.InstanceID, "plan_id", req.PlanID)
	return false, nil
}

// Get returns the stored instance record.
func (s *InstanceService) Get(ctx context.Context, instanceID string) (*domain.ServiceInstance, error) {
	return s.instances.FindByID(ctx, instanceID)
}

// Delete tears down the backing resource and removes the instance record.
// Deleting an unknown instance fails with a not-found error.
func (s *InstanceService) Delete(ctx context.Context, instanceID string) error {
	s.locks.Lock(instanceID)
	defer s.locks.Unlock(instanceID)

	exists, err := s.instances.ExistsByID(ctx, instanceID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound("service instance %q does not exist", instanceID)
	}

	if err := s.resources.DeleteResource(ctx, instanceID); err != nil {
		return err
	}
	if err := s.instances.DeleteByID(ctx, instanceID); err != nil {
		return err
	}

	s.logger.Info("service instance deleted", "instance_id", instanceID)
	return nil
}
