// Package catalog holds the in-memory catalog for the session: products,
// brands and categories, loaded wholesale at startup. Admin mutations are
// round-tripped through the Repository and applied to memory only after the
// round trip succeeds, so memory never diverges from the source of truth.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"kicharme.com.br/storefront/pkg/models"
)

// Store is the session catalog. Safe for concurrent readers; the HTTP
// server calls into it from many goroutines.
type Store struct {
	mu         sync.RWMutex
	loaded     bool
	products   []models.Product
	brands     []string
	categories []string
	repo       Repository
}

// NewStore returns an empty, unloaded store backed by repo.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Load replaces the in-memory catalog with a fresh snapshot. Until the
// first successful Load every lookup behaves as an empty catalog.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.repo.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.Products
	s.brands = snap.Brands
	s.categories = snap.Categories
	s.loaded = true
	return nil
}

// Loaded reports whether the initial catalog load has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Filter narrows the product listing. Zero-value fields match everything.
type Filter struct {
	Brand        string
	Category     string
	Search       string
	FeaturedOnly bool
}

// Products returns the products matching the filter, in catalog order
// (newest first, matching how saves prepend).
func (s *Store) Products(f Filter) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if f.Brand != "" && p.Brand != f.Brand {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.FeaturedOnly && !p.Featured {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Product returns the product with the given id.
func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ResolveParent maps a cart line id to its parent product: the product
// itself for variantless lines, or the product owning the variant. This is
// the lookup the pricing engine groups by.
func (s *Store) ResolveParent(lineItemID string) (*models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		p := s.products[i]
		if p.ID == lineItemID && !p.HasVariants() {
			cp := p
			return &cp, true
		}
		if _, ok := p.VariantByID(lineItemID); ok {
			cp := p
			return &cp, true
		}
	}
	return nil, false
}

// Brands returns the managed brand directory plus any brand referenced by a
// product but missing from the directory, directory order first.
func (s *Store) Brands() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return unionNames(s.brands, s.products, func(p models.Product) string { return p.Brand })
}

// Categories mirrors Brands for categories.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return unionNames(s.categories, s.products, func(p models.Product) string { return p.Category })
}

func unionNames(directory []string, products []models.Product, key func(models.Product) string) []string {
	seen := make(map[string]bool, len(directory))
	out := make([]string, 0, len(directory))
	for _, name := range directory {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, p := range products {
		if name := key(p); name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// SaveProduct sanitizes the product, persists it and only then updates the
// in-memory catalog. New products are prepended; existing ones replaced.
func (s *Store) SaveProduct(ctx context.Context, p models.Product) (models.Product, error) {
	p.Sanitize()
	p.SetTimestamps()

	saved, err := s.repo.SaveProduct(ctx, p)
	if err != nil {
		return models.Product{}, fmt.Errorf("save product: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == saved.ID {
			s.products[i] = saved
			return saved, nil
		}
	}
	s.products = append([]models.Product{saved}, s.products...)
	return saved, nil
}

// DeleteProduct removes the product after the repository confirms.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	return nil
}

// AddBrand registers a brand name in the directory.
func (s *Store) AddBrand(ctx context.Context, name string) error {
	if err := s.repo.AddBrand(ctx, name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = appendName(s.brands, name)
	return nil
}

// RenameBrand renames a brand; the repository cascades the rename to every
// product referencing the old name, then memory follows.
func (s *Store) RenameBrand(ctx context.Context, oldName, newName string) error {
	if err := s.repo.RenameBrand(ctx, oldName, newName); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = renameIn(s.brands, oldName, newName)
	for i := range s.products {
		if s.products[i].Brand == oldName {
			s.products[i].Brand = newName
		}
	}
	return nil
}

// DeleteBrand removes the name from the directory. Products keep their
// stored brand text.
func (s *Store) DeleteBrand(ctx context.Context, name string) error {
	if err := s.repo.DeleteBrand(ctx, name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = removeName(s.brands, name)
	return nil
}

// AddCategory registers a category name in the directory.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	if err := s.repo.AddCategory(ctx, name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = appendName(s.categories, name)
	return nil
}

// RenameCategory mirrors RenameBrand for categories.
func (s *Store) RenameCategory(ctx context.Context, oldName, newName string) error {
	if err := s.repo.RenameCategory(ctx, oldName, newName); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = renameIn(s.categories, oldName, newName)
	for i := range s.products {
		if s.products[i].Category == oldName {
			s.products[i].Category = newName
		}
	}
	return nil
}

// DeleteCategory removes the name from the directory.
func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	if err := s.repo.DeleteCategory(ctx, name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = removeName(s.categories, name)
	return nil
}

func appendName(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

func renameIn(names []string, oldName, newName string) []string {
	for i, n := range names {
		if n == oldName {
			names[i] = newName
		}
	}
	return names
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
