package domain

import "context"

// InstanceRepository persists service instance records.
type InstanceRepository interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*ServiceInstance, error)
	Save(ctx context.Context, instance *ServiceInstance) error
	DeleteByID(ctx context.Context, id string) error
}

// BindingRepository persists service binding records.
type BindingRepository interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*ServiceBinding, error)
	Save(ctx context.Context, binding *ServiceBinding) error
	DeleteByID(ctx context.Context, id string) error
}

// UserRepository persists broker users (principals).
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Save(ctx context.Context, user *User) (*User, error)
	DeleteByID(ctx context.Context, id int64) error
}

// BookStoreRepository persists book stores and their books.
type BookStoreRepository interface {
	Create(ctx context.Context, storeID string) error
	FindByID(ctx context.Context, storeID string) (*BookStore, error)
	DeleteByID(ctx context.Context, storeID string) error
	AddBook(ctx context.Context, storeID string, book *Book) error
	FindBook(ctx context.Context, storeID, bookID string) (*Book, error)
	RemoveBook(ctx context.Context, storeID, bookID string) (*Book, error)
}

// SecretEscrow stores credential maps in an external (or externalized)
// secret store under a derived name. Implementations must never return the
// stored plaintext through error values.
type SecretEscrow interface {
	Store(ctx context.Context, name string, credentials map[string]interface{}, grantees []string) error
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
}
