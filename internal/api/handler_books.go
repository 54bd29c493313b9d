package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/service/security"
)

type bookBody struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// checkStoreAccess verifies the request principal may touch the given store.
// The store-scope tag must match and the role must permit the operation.
func (h *Handler) checkStoreAccess(r *http.Request, storeID string, write bool) error {
	principal, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		return domain.ErrAccessDenied("no authenticated principal")
	}
	if !h.authorizer.Authorize(principal.Authorities, storeID) {
		return domain.ErrAccessDenied("not authorized for store %q", storeID)
	}
	if write && !security.CanWrite(principal.Authorities) {
		return domain.ErrAccessDenied("write access denied")
	}
	if !write && !security.CanRead(principal.Authorities) {
		return domain.ErrAccessDenied("read access denied")
	}
	return nil
}

// GetBookStore returns a store and all of its books.
func (h *Handler) GetBookStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if err := h.checkStoreAccess(r, storeID, false); err != nil {
		h.writeError(w, err)
		return
	}

	bookStore, err := h.books.GetBookStore(r.Context(), storeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, bookStoreToAPI(bookStore))
}

// AddBook adds a book to a store and returns the created record.
func (h *Handler) AddBook(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if err := h.checkStoreAccess(r, storeID, true); err != nil {
		h.writeError(w, err)
		return
	}

	var body bookBody
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, err)
		return
	}

	book, err := h.books.PutBookInStore(r.Context(), storeID, domain.Book{
		ISBN:   body.ISBN,
		Title:  body.Title,
		Author: body.Author,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, bookToAPI(book))
}

// GetBook returns a single book.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	bookID := chi.URLParam(r, "bookID")
	if err := h.checkStoreAccess(r, storeID, false); err != nil {
		h.writeError(w, err)
		return
	}

	book, err := h.books.GetBookFromStore(r.Context(), storeID, bookID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, bookToAPI(book))
}

// DeleteBook removes a book and returns the removed record.
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	bookID := chi.URLParam(r, "bookID")
	if err := h.checkStoreAccess(r, storeID, true); err != nil {
		h.writeError(w, err)
		return
	}

	book, err := h.books.RemoveBookFromStore(r.Context(), storeID, bookID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, bookToAPI(book))
}

func bookToAPI(b *domain.Book) map[string]interface{} {
	return map[string]interface{}{
		"id":     b.ID,
		"isbn":   b.ISBN,
		"title":  b.Title,
		"author": b.Author,
	}
}

func bookStoreToAPI(s *domain.BookStore) map[string]interface{} {
	books := make([]map[string]interface{}, len(s.Books))
	for i := range s.Books {
		books[i] = bookToAPI(&s.Books[i])
	}
	return map[string]interface{}{
		"id":    s.ID,
		"books": books,
	}
}
