package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"kicharme.com.br/storefront/pkg/catalog"
	"kicharme.com.br/storefront/pkg/models"
)

var _ catalog.UserDirectory = (*Repository)(nil)

func (r *Repository) Users(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection("users").Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *Repository) UserByWhatsApp(ctx context.Context, whatsapp string) (models.User, error) {
	var u models.User
	err := r.collection("users").FindOne(ctx, bson.M{"whatsapp": whatsapp}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, catalog.ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user %s: %w", whatsapp, err)
	}
	return u, nil
}

func (r *Repository) AddUser(ctx context.Context, u models.User) (models.User, error) {
	u.SetTimestamps()
	if _, err := r.collection("users").InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, catalog.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user %s: %w", u.WhatsApp, err)
	}
	return u, nil
}

func (r *Repository) UpdateUserStatus(ctx context.Context, whatsapp string, status models.UserStatus) (models.User, error) {
	result, err := r.collection("users").UpdateOne(ctx,
		bson.M{"whatsapp": whatsapp},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return models.User{}, fmt.Errorf("update user %s: %w", whatsapp, err)
	}
	if result.MatchedCount == 0 {
		return models.User{}, catalog.ErrNotFound
	}
	return r.UserByWhatsApp(ctx, whatsapp)
}

func (r *Repository) DeleteUser(ctx context.Context, whatsapp string) error {
	result, err := r.collection("users").DeleteOne(ctx, bson.M{"whatsapp": whatsapp})
	if err != nil {
		return fmt.Errorf("delete user %s: %w", whatsapp, err)
	}
	if result.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
