// Package store implements the per-instance resource stores the broker
// provisions: SQLite-backed book stores and an in-memory key-value variant.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// BookStoreService provides CRUD over book stores and their books, and
// implements the resource-store capability consumed by the instance
// lifecycle.
type BookStoreService struct {
	repo domain.BookStoreRepository
}

// NewBookStoreService creates a new BookStoreService.
func NewBookStoreService(repo domain.BookStoreRepository) *BookStoreService {
	return &BookStoreService{repo: repo}
}

// CreateResource creates an empty book store keyed by the service instance ID.
func (s *BookStoreService) CreateResource(ctx context.Context, id string) error {
	return s.repo.Create(ctx, id)
}

// DeleteResource destroys the book store and all of its books.
func (s *BookStoreService) DeleteResource(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// GetBookStore returns the store with all of its books.
func (s *BookStoreService) GetBookStore(ctx context.Context, storeID string) (*domain.BookStore, error) {
	return s.repo.FindByID(ctx, storeID)
}

// PutBookInStore adds a book to the store under a server-generated ID and
// returns the stored book.
func (s *BookStoreService) PutBookInStore(ctx context.Context, storeID string, book domain.Book) (*domain.Book, error) {
	book.ID = uuid.NewString()
	if err := s.repo.AddBook(ctx, storeID, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookFromStore returns a single book from the store.
func (s *BookStoreService) GetBookFromStore(ctx context.Context, storeID, bookID string) (*domain.Book, error) {
	return s.repo.FindBook(ctx, storeID, bookID)
}

// RemoveBookFromStore deletes a book and returns the removed record.
func (s *BookStoreService) RemoveBookFromStore(ctx context.Context, storeID, bookID string) (*domain.Book, error) {
	return s.repo.RemoveBook(ctx, storeID, bookID)
}

var _ domain.ResourceStore = (*BookStoreService)(nil)
