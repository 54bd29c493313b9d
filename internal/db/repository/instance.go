package repository

import (
	"context"
	"database/sql"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// InstanceRepo persists service instance records in SQLite.
type InstanceRepo struct {
	db *sql.DB
}

func NewInstanceRepo(db *sql.DB) *InstanceRepo {
	return &InstanceRepo{db: db}
}

func (r *InstanceRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM service_instances WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *InstanceRepo) FindByID(ctx context.Context, id string) (*domain.ServiceInstance, error) {
	var (
		inst   domain.ServiceInstance
		params string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, service_definition_id, plan_id, parameters, created_at
		 FROM service_instances WHERE id = ?`, id).
		Scan(&inst.ID, &inst.ServiceDefinitionID, &inst.PlanID, &params, &inst.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	if inst.Parameters, err = unmarshalMap(params); err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *InstanceRepo) Save(ctx context.Context, instance *domain.ServiceInstance) error {
	params, err := marshalJSON(instance.Parameters)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO service_instances (id, service_definition_id, plan_id, parameters)
		 VALUES (?, ?, ?, ?)`,
		instance.ID, instance.ServiceDefinitionID, instance.PlanID, params)
	return mapDBError(err)
}

func (r *InstanceRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM service_instances WHERE id = ?`, id)
	return err
}

var _ domain.InstanceRepository = (*InstanceRepo)(nil)
