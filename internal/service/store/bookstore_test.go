package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/db"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/db/repository"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

func newTestBookStoreService(t *testing.T) *BookStoreService {
	t.Helper()
	writeDB, _ := db.OpenTestSQLite(t)
	return NewBookStoreService(repository.NewBookStoreRepo(writeDB))
}

func TestBookStoreLifecycle(t *testing.T) {
	svc := newTestBookStoreService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateResource(ctx, "store-1"))

	added, err := svc.PutBookInStore(ctx, "store-1", domain.Book{
		ISBN:   "978-1617291784",
		Title:  "Go in Action",
		Author: "Kennedy",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	got, err := svc.GetBookFromStore(ctx, "store-1", added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go in Action", got.Title)

	bookStore, err := svc.GetBookStore(ctx, "store-1")
	require.NoError(t, err)
	assert.Equal(t, "store-1", bookStore.ID)
	require.Len(t, bookStore.Books, 1)

	removed, err := svc.RemoveBookFromStore(ctx, "store-1", added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.ID, removed.ID)

	var notFound *domain.NotFoundError
	_, err = svc.GetBookFromStore(ctx, "store-1", added.ID)
	assert.ErrorAs(t, err, &notFound)
}

func TestBookStoreDeleteCascades(t *testing.T) {
	svc := newTestBookStoreService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateResource(ctx, "store-1"))
	_, err := svc.PutBookInStore(ctx, "store-1", domain.Book{Title: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteResource(ctx, "store-1"))

	var notFound *domain.NotFoundError
	_, err = svc.GetBookStore(ctx, "store-1")
	assert.ErrorAs(t, err, &notFound)
}

func TestBookStoreAddToUnknownStore(t *testing.T) {
	svc := newTestBookStoreService(t)

	var notFound *domain.NotFoundError
	_, err := svc.PutBookInStore(context.Background(), "ghost", domain.Book{Title: "X"})
	assert.ErrorAs(t, err, &notFound)
}
