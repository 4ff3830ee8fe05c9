package catalog

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"kicharme.com.br/storefront/pkg/models"
)

// MemoryRepository is the fallback persistence used when no MongoDB URI is
// configured, mirroring the original local-storage mode. It also backs the
// handler tests.
type MemoryRepository struct {
	mu         sync.Mutex
	products   []models.Product
	brands     []string
	categories []string
	users      []models.User
}

var (
	_ Repository    = (*MemoryRepository)(nil)
	_ UserDirectory = (*MemoryRepository)(nil)
)

// NewMemoryRepository seeds an in-memory repository with the given snapshot.
func NewMemoryRepository(seed Snapshot) *MemoryRepository {
	return &MemoryRepository{
		products:   append([]models.Product(nil), seed.Products...),
		brands:     append([]string(nil), seed.Brands...),
		categories: append([]string(nil), seed.Categories...),
	}
}

func (m *MemoryRepository) LoadCatalog(context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Products:   append([]models.Product(nil), m.products...),
		Brands:     append([]string(nil), m.brands...),
		Categories: append([]string(nil), m.categories...),
	}, nil
}

func (m *MemoryRepository) SaveProduct(_ context.Context, p models.Product) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = bson.NewObjectID().Hex()
	}
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = p
			return p, nil
		}
	}
	m.products = append([]models.Product{p}, m.products...)
	return p, nil
}

func (m *MemoryRepository) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryRepository) AddBrand(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.brands {
		if b == name {
			return ErrAlreadyExists
		}
	}
	m.brands = append(m.brands, name)
	return nil
}

func (m *MemoryRepository) RenameBrand(_ context.Context, oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for i, b := range m.brands {
		if b == oldName {
			m.brands[i] = newName
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}
	for i := range m.products {
		if m.products[i].Brand == oldName {
			m.products[i].Brand = newName
		}
	}
	return nil
}

func (m *MemoryRepository) DeleteBrand(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.brands {
		if b == name {
			m.brands = append(m.brands[:i], m.brands[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryRepository) AddCategory(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c == name {
			return ErrAlreadyExists
		}
	}
	m.categories = append(m.categories, name)
	return nil
}

func (m *MemoryRepository) RenameCategory(_ context.Context, oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for i, c := range m.categories {
		if c == oldName {
			m.categories[i] = newName
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}
	for i := range m.products {
		if m.products[i].Category == oldName {
			m.products[i].Category = newName
		}
	}
	return nil
}

func (m *MemoryRepository) DeleteCategory(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.categories {
		if c == name {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryRepository) Users(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.User(nil), m.users...), nil
}

func (m *MemoryRepository) UserByWhatsApp(_ context.Context, whatsapp string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.WhatsApp == whatsapp {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *MemoryRepository) AddUser(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.WhatsApp == u.WhatsApp {
			return models.User{}, ErrAlreadyExists
		}
	}
	u.SetTimestamps()
	m.users = append(m.users, u)
	return u, nil
}

func (m *MemoryRepository) UpdateUserStatus(_ context.Context, whatsapp string, status models.UserStatus) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].WhatsApp == whatsapp {
			m.users[i].Status = status
			m.users[i].SetTimestamps()
			return m.users[i], nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *MemoryRepository) DeleteUser(_ context.Context, whatsapp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].WhatsApp == whatsapp {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
