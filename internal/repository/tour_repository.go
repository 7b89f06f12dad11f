package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"travel-app/tour-review-service/internal/models"
)

// TourRepository reads the tours collection owned by the tour service. Only
// existence checks and listing snapshots are needed here.
type TourRepository struct {
	collection *mongo.Collection
}

func NewTourRepository(db *mongo.Database) *TourRepository {
	return &TourRepository{collection: db.Collection("tours")}
}

func (r *TourRepository) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByIDs fetches tour snapshots for the given ids in one query and returns
// them keyed by hex id. Unknown and malformed ids are simply absent from the
// result.
func (r *TourRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.TourInfo, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	result := make(map[string]*models.TourInfo, len(oids))
	if len(oids) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	var tours []models.TourInfo
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, err
	}
	for i := range tours {
		result[tours[i].ID.Hex()] = &tours[i]
	}
	return result, nil
}
