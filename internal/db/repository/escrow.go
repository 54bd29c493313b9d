package repository

import (
	"context"
	"database/sql"
)

// EscrowRecord is a stored escrowed secret: an opaque ciphertext plus the
// identities granted read access.
type EscrowRecord struct {
	Name       string
	Ciphertext string
	Grantees   []string
}

// EscrowRepo persists escrowed secrets in SQLite. Values arrive already
// encrypted; this layer never sees credential plaintext.
type EscrowRepo struct {
	db *sql.DB
}

func NewEscrowRepo(db *sql.DB) *EscrowRepo {
	return &EscrowRepo{db: db}
}

func (r *EscrowRepo) Put(ctx context.Context, rec *EscrowRecord) error {
	grantees, err := marshalJSON(rec.Grantees)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO escrowed_secrets (name, ciphertext, grantees) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET ciphertext = excluded.ciphertext, grantees = excluded.grantees`,
		rec.Name, rec.Ciphertext, grantees)
	return err
}

func (r *EscrowRepo) Get(ctx context.Context, name string) (*EscrowRecord, error) {
	var (
		rec      EscrowRecord
		grantees string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT name, ciphertext, grantees FROM escrowed_secrets WHERE name = ?`, name).
		Scan(&rec.Name, &rec.Ciphertext, &grantees)
	if err != nil {
		return nil, mapDBError(err)
	}
	if rec.Grantees, err = unmarshalStrings(grantees); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *EscrowRepo) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM escrowed_secrets WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *EscrowRepo) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM escrowed_secrets WHERE name = ?`, name)
	return err
}
