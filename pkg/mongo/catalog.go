package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"kicharme.com.br/storefront/pkg/catalog"
	"kicharme.com.br/storefront/pkg/logger"
	"kicharme.com.br/storefront/pkg/models"
)

var _ catalog.Repository = (*Repository)(nil)

type namedDoc struct {
	Name string `bson:"name"`
}

// LoadCatalog fetches the whole catalog in one pass. A brand or category
// directory that was never initialised reads as an empty set so the catalog
// stays browsable.
func (r *Repository) LoadCatalog(ctx context.Context) (catalog.Snapshot, error) {
	products, err := r.loadProducts(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}

	snap := catalog.Snapshot{Products: products}
	snap.Brands = r.loadNames(ctx, "brands")
	snap.Categories = r.loadNames(ctx, "categories")
	return snap, nil
}

func (r *Repository) loadProducts(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection("products").Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *Repository) loadNames(ctx context.Context, collectionName string) []string {
	cursor, err := r.collection(collectionName).Find(ctx, bson.D{})
	if err != nil {
		logger.Warn().Err(err).Str("collection", collectionName).Msg("directory unavailable, treating as empty")
		return nil
	}
	defer cursor.Close(ctx)

	var docs []namedDoc
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Warn().Err(err).Str("collection", collectionName).Msg("directory decode failed, treating as empty")
		return nil
	}
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names
}

// SaveProduct upserts by id, assigning a new id server-side when absent,
// and returns the canonical stored record.
func (r *Repository) SaveProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = bson.NewObjectID().Hex()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection("products").ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts); err != nil {
		return models.Product{}, fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	return p, nil
}

// DeleteProduct removes the product document.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	result, err := r.collection("products").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *Repository) AddBrand(ctx context.Context, name string) error {
	return r.addName(ctx, "brands", name)
}

// RenameBrand renames the directory entry and cascades to every product
// referencing the old name. The two writes are not transactional; a crash
// between them leaves products to be fixed by a retry.
func (r *Repository) RenameBrand(ctx context.Context, oldName, newName string) error {
	if err := r.renameName(ctx, "brands", oldName, newName); err != nil {
		return err
	}
	_, err := r.collection("products").UpdateMany(ctx,
		bson.M{"brand": oldName},
		bson.M{"$set": bson.M{"brand": newName}},
	)
	if err != nil {
		return fmt.Errorf("cascade brand rename: %w", err)
	}
	return nil
}

func (r *Repository) DeleteBrand(ctx context.Context, name string) error {
	return r.deleteName(ctx, "brands", name)
}

func (r *Repository) AddCategory(ctx context.Context, name string) error {
	return r.addName(ctx, "categories", name)
}

// RenameCategory mirrors RenameBrand for categories.
func (r *Repository) RenameCategory(ctx context.Context, oldName, newName string) error {
	if err := r.renameName(ctx, "categories", oldName, newName); err != nil {
		return err
	}
	_, err := r.collection("products").UpdateMany(ctx,
		bson.M{"category": oldName},
		bson.M{"$set": bson.M{"category": newName}},
	)
	if err != nil {
		return fmt.Errorf("cascade category rename: %w", err)
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, name string) error {
	return r.deleteName(ctx, "categories", name)
}

func (r *Repository) addName(ctx context.Context, collectionName, name string) error {
	_, err := r.collection(collectionName).InsertOne(ctx, namedDoc{Name: name})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalog.ErrAlreadyExists
		}
		return fmt.Errorf("insert into %s: %w", collectionName, err)
	}
	return nil
}

func (r *Repository) renameName(ctx context.Context, collectionName, oldName, newName string) error {
	result, err := r.collection(collectionName).UpdateOne(ctx,
		bson.M{"name": oldName},
		bson.M{"$set": bson.M{"name": newName}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalog.ErrAlreadyExists
		}
		return fmt.Errorf("rename in %s: %w", collectionName, err)
	}
	if result.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *Repository) deleteName(ctx context.Context, collectionName, name string) error {
	result, err := r.collection(collectionName).DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", collectionName, err)
	}
	if result.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is a missing-document condition from
// either this package or the driver.
func IsNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNotFound) || errors.Is(err, mongo.ErrNoDocuments)
}
