package repository

import (
	"context"
	"database/sql"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// UserRepo persists broker users in SQLite. The password column always holds
// the encoded form; plaintext secrets never reach this layer.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var (
		u           domain.User
		authorities string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password, authorities, created_at FROM users WHERE username = ?`,
		username).
		Scan(&u.ID, &u.Username, &u.Password, &authorities, &u.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	if u.Authorities, err = unmarshalStrings(authorities); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	authorities, err := marshalJSON(user.Authorities)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password, authorities) VALUES (?, ?, ?)`,
		user.Username, user.Password, authorities)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	saved := *user
	saved.ID = id
	return &saved, nil
}

func (r *UserRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

var _ domain.UserRepository = (*UserRepo)(nil)
