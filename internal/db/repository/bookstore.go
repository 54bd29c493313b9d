package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// BookStoreRepo persists book stores and their books in SQLite.
type BookStoreRepo struct {
	db *sql.DB
}

func NewBookStoreRepo(db *sql.DB) *BookStoreRepo {
	return &BookStoreRepo{db: db}
}

func (r *BookStoreRepo) Create(ctx context.Context, storeID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO book_stores (id) VALUES (?)`, storeID)
	return mapDBError(err)
}

func (r *BookStoreRepo) FindByID(ctx context.Context, storeID string) (*domain.BookStore, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM book_stores WHERE id = ?`, storeID).Scan(&id)
	if err != nil {
		return nil, mapDBError(err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, isbn, title, author FROM books WHERE store_id = ? ORDER BY rowid`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	store := &domain.BookStore{ID: id}
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author); err != nil {
			return nil, err
		}
		store.Books = append(store.Books, b)
	}
	return store, rows.Err()
}

func (r *BookStoreRepo) DeleteByID(ctx context.Context, storeID string) error {
	// Books are removed by the ON DELETE CASCADE constraint.
	_, err := r.db.ExecContext(ctx, `DELETE FROM book_stores WHERE id = ?`, storeID)
	return err
}

func (r *BookStoreRepo) AddBook(ctx context.Context, storeID string, book *domain.Book) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO books (id, store_id, isbn, title, author)
		 SELECT ?, id, ?, ?, ? FROM book_stores WHERE id = ?`,
		book.ID, book.ISBN, book.Title, book.Author, storeID)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("book store %q not found", storeID)
	}
	return nil
}

func (r *BookStoreRepo) FindBook(ctx context.Context, storeID, bookID string) (*domain.Book, error) {
	var b domain.Book
	err := r.db.QueryRowContext(ctx,
		`SELECT id, isbn, title, author FROM books WHERE store_id = ? AND id = ?`,
		storeID, bookID).
		Scan(&b.ID, &b.ISBN, &b.Title, &b.Author)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &b, nil
}

func (r *BookStoreRepo) RemoveBook(ctx context.Context, storeID, bookID string) (*domain.Book, error) {
	book, err := r.FindBook(ctx, storeID, bookID)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM books WHERE store_id = ? AND id = ?`, storeID, bookID); err != nil {
		return nil, fmt.Errorf("delete book: %w", err)
	}
	return book, nil
}

var _ domain.BookStoreRepository = (*BookStoreRepo)(nil)
