package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"kicharme.com.br/storefront/pkg/global"
	"kicharme.com.br/storefront/pkg/logger"
)

type indexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []indexConfig{
	// Users Collection
	{
		CollectionName: "users",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "whatsapp", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_whatsapp_unique"),
		},
	},

	// Products Collection
	// Single-field indexes backing the brand/category filters
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "brand", Value: 1}},
			Options: options.Index().SetName("idx_brand"),
		},
	},
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
	// Load order: newest products first
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	},
	// Text index for storefront search
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "brand", Value: "text"},
				{Key: "category", Value: "text"},
			},
			Options: options.Index().
				SetName("idx_product_text_search").
				SetWeights(bson.D{
					{Key: "name", Value: 10},
					{Key: "brand", Value: 5},
					{Key: "category", Value: 1},
				}),
		},
	},

	// Brand / Category directories
	{
		CollectionName: "brands",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_brand_name_unique"),
		},
	},
	{
		CollectionName: "categories",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_category_name_unique"),
		},
	},
}

// EnsureIndexes creates every required index, once, at startup.
func (r *Repository) EnsureIndexes() error {
	for _, idx := range requiredIndexes {
		ctx, cancel := global.GetDefaultTimer()
		name, err := r.collection(idx.CollectionName).Indexes().CreateOne(ctx, idx.IndexModel)
		cancel()
		if err != nil {
			return fmt.Errorf("create index on %s: %w", idx.CollectionName, err)
		}
		logger.Debug().Str("index", name).Str("collection", idx.CollectionName).Msg("index ensured")
	}
	return nil
}
