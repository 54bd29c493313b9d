package domain

// Book is a single entry in a book store. IDs are server-generated.
type Book struct {
	ID     string
	ISBN   string
	Title  string
	Author string
}

// BookStore is the per-instance resource backing a bookstore service
// instance, keyed by the service instance ID.
type BookStore struct {
	ID    string
	Books []Book
}

// BookByID returns the book with the given ID, or nil.
func (s *BookStore) BookByID(bookID string) *Book {
	for i := range s.Books {
		if s.Books[i].ID == bookID {
			return &s.Books[i]
		}
	}
	return nil
}
