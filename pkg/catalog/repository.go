package catalog

import (
	"context"
	"errors"

	"kicharme.com.br/storefront/pkg/models"
)

var (
	// ErrNotFound indicates the entity does not exist in the backing store.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique key collision (brand name, user whatsapp).
	ErrAlreadyExists = errors.New("already exists")
)

// Snapshot is the bulk-load result: the whole catalog for one session.
// Brand and category directories may be empty when never initialised; the
// catalog stays browsable through the names derived from products.
type Snapshot struct {
	Products   []models.Product
	Brands     []string
	Categories []string
}

// Repository is the catalog persistence capability. One implementation is
// selected at startup: MongoDB when configured, the in-memory fallback
// otherwise. Renames cascade to referencing products inside the repository.
type Repository interface {
	LoadCatalog(ctx context.Context) (Snapshot, error)

	SaveProduct(ctx context.Context, p models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	AddBrand(ctx context.Context, name string) error
	RenameBrand(ctx context.Context, oldName, newName string) error
	DeleteBrand(ctx context.Context, name string) error

	AddCategory(ctx context.Context, name string) error
	RenameCategory(ctx context.Context, oldName, newName string) error
	DeleteCategory(ctx context.Context, name string) error
}

// UserDirectory manages customer access records keyed by WhatsApp number.
type UserDirectory interface {
	Users(ctx context.Context) ([]models.User, error)
	UserByWhatsApp(ctx context.Context, whatsapp string) (models.User, error)
	AddUser(ctx context.Context, u models.User) (models.User, error)
	UpdateUserStatus(ctx context.Context, whatsapp string, status models.UserStatus) (models.User, error)
	DeleteUser(ctx context.Context, whatsapp string) error
}
