package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travel-app/tour-review-service/internal/models"
)

// UserRepository reads author display fields from the users collection owned
// by the auth service.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// GetByIDs fetches author snapshots for the given ids in one query, keyed by
// user id.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserInfo, error) {
	result := make(map[primitive.ObjectID]*models.UserInfo, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	projection := options.Find().SetProjection(bson.M{"fullName": 1, "avatar": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, projection)
	if err != nil {
		return nil, err
	}
	var users []models.UserInfo
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		result[users[i].ID] = &users[i]
	}
	return result, nil
}
