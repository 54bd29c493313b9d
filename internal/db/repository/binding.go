package repository

import (
	"context"
	"database/sql"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// BindingRepo persists service binding records in SQLite. Credential maps are
// stored as JSON exactly as issued so that replayed creates return them
// byte-for-byte unchanged.
type BindingRepo struct {
	db *sql.DB
}

func NewBindingRepo(db *sql.DB) *BindingRepo {
	return &BindingRepo{db: db}
}

func (r *BindingRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM service_bindings WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BindingRepo) FindByID(ctx context.Context, id string) (*domain.ServiceBinding, error) {
	var (
		b      domain.ServiceBinding
		params string
		creds  string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, instance_id, parameters, credentials, created_at
		 FROM service_bindings WHERE id = ?`, id).
		Scan(&b.ID, &b.InstanceID, &params, &creds, &b.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	if b.Parameters, err = unmarshalMap(params); err != nil {
		return nil, err
	}
	if b.Credentials, err = unmarshalMap(creds); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BindingRepo) Save(ctx context.Context, binding *domain.ServiceBinding) error {
	params, err := marshalJSON(binding.Parameters)
	if err != nil {
		return err
	}
	creds, err := marshalJSON(binding.Credentials)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO service_bindings (id, instance_id, parameters, credentials)
		 VALUES (?, ?, ?, ?)`,
		binding.ID, binding.InstanceID, params, creds)
	return mapDBError(err)
}

func (r *BindingRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM service_bindings WHERE id = ?`, id)
	return err
}

var _ domain.BindingRepository = (*BindingRepo)(nil)
